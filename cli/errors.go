package cli

// ErrorCode defines error types for CLI operations
type ErrorCode string

const (
	InvalidFlag ErrorCode = "InvalidFlag"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
