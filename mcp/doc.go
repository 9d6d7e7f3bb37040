// Package mcp implements the Model Context Protocol server for weatherforecast.
//
// The server runs over stdio and exposes two tools: search_place resolves a
// search term to a gazetteer row, and weather_forecast returns the rendered
// forecast for it.
package mcp
