// Package cli implements the command-line interface for weatherforecast.
//
// The cli package provides:
// - The root command searching a place and printing its forecast
// - Enum flags for scope, language and table format
// - A progress bar and screen clearing when attached to a terminal
// - A pager and browser integration
package cli
