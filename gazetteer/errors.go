package gazetteer

// ErrorCode defines error types for dataset operations
type ErrorCode string

const (
	// ErrDataLoad represents a dataset that could not be opened or parsed
	ErrDataLoad ErrorCode = "DataLoadError"
	// ErrUnknownDataset represents a dataset or language value outside the known set
	ErrUnknownDataset ErrorCode = "UnknownDataset"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
