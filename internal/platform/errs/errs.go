package errs

import "fmt"

// Kind categorizes application errors for HTTP status mapping.
type Kind int

const (
	// Unknown represents an unclassified error.
	Unknown Kind = iota
	// InvalidInput indicates the upload was malformed (HTTP 400).
	InvalidInput
	// Unreachable indicates the scan service could not be reached (HTTP 502).
	Unreachable
	// Rejected indicates the scan service processed the upload but
	// reported a failure in the document (HTTP 422).
	Rejected
	// ParsingFailed indicates the scan service's response could not be
	// decoded (HTTP 502).
	ParsingFailed
)

// AppError carries a category, user message, and original cause.
type AppError struct {
	Kind           Kind
	UpstreamStatus int // HTTP status code returned by the scan service
	Message        string
	Cause          error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}
