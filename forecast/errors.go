package forecast

// ErrorCode defines error types for forecast feed operations
type ErrorCode string

const (
	// ErrFetch represents a transport failure or an unsuccessful response
	ErrFetch ErrorCode = "FetchError"
	// ErrParse represents a feed body that is not well-formed XML
	ErrParse ErrorCode = "ParseError"
	// ErrMissingField represents an expected node absent from a parsed feed
	ErrMissingField ErrorCode = "MissingFieldError"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
