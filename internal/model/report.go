package model

// Report is the analysis document the scan service returns for one
// uploaded creative. The service reports rejected uploads inside the
// document rather than through transport errors, so Error travels with
// the rest of the payload and the caller decides what counts as failure.
type Report struct {
	RunID      string         `json:"run_id"`
	Error      string         `json:"error"`
	Metadata   map[string]any `json:"metadata"`
	Archive    []ArchiveEntry `json:"archive"`
	Thumbnails []Thumbnail    `json:"thumbnails"`
	Results    []CheckRow     `json:"results"`
	Runtime    Runtime        `json:"runtime"`

	// HTTPStatus and Raw are recorded by the client that fetched the
	// document, not decoded from it.
	HTTPStatus int    `json:"-"`
	Raw        []byte `json:"-"`
}

// OK reports whether the document describes a completed analysis: the
// service answered with a success status and did not flag an error.
func (r *Report) OK() bool {
	return r.HTTPStatus >= 200 && r.HTTPStatus < 300 && r.Error == ""
}

// ArchiveEntry describes one entry of the uploaded ZIP.
type ArchiveEntry struct {
	Name       string `json:"name"`
	IsDir      bool   `json:"is_dir"`
	Size       int64  `json:"size"`
	Compressed int64  `json:"compressed"`
}

// Thumbnail is a still frame captured while the creative ran, encoded as
// a data URI, keyed by the capture time in seconds.
type Thumbnail struct {
	TimeSec float64 `json:"t_sec"`
	PNG     string  `json:"png_b64"`
}

// CheckRow is one validation check outcome. Status names the severity
// class the row is displayed with.
type CheckRow struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Label    string `json:"label"`
	Status   string `json:"status"`
	Value    string `json:"value"`
	Help     string `json:"help"`
}

// Runtime carries the measurements taken while the creative ran.
type Runtime struct {
	NetworkRequests []NetworkRequest `json:"network_requests"`
}

// NetworkRequest is one request observed during the run. Status and
// Bytes are pointers because the service sends null when a response
// never arrived or had no measurable size.
type NetworkRequest struct {
	URL      string `json:"url"`
	Status   *int   `json:"status"`
	Protocol string `json:"protocol"`
	Encoding string `json:"enc"`
	Bytes    *int64 `json:"bytes"`
	Type     string `json:"type"`
}

// ErrorResponse is the JSON shape returned on failure.
type ErrorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}
