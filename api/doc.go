// Package api ties the gazetteer, the search engine and the forecast feeds
// together. It is shared by the command line and the MCP server.
package api

// ErrorCode defines error types for API operations
type ErrorCode string

const (
	// ErrNotFound represents a search term that matched no place
	ErrNotFound ErrorCode = "NotFoundError"
	// ErrInvalidOptions represents options outside the accepted values
	ErrInvalidOptions ErrorCode = "InvalidOptions"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
