package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/Bahjat/adzip-report/internal/platform/errs"
	"github.com/Bahjat/adzip-report/internal/platform/requestid"
	"github.com/Bahjat/adzip-report/internal/render"
)

// archiveExt is the only archive type the validator accepts.
const archiveExt = ".zip"

// genericFailure is shown when a failed scan carries no message of its own.
const genericFailure = "Scan failed. Please try again."

// ValidName reports whether filename names an acceptable archive. Every
// upload surface shares this one check.
func ValidName(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), archiveExt)
}

// Controller owns one report view and runs upload cycles against it:
// clear the containers, send the file for analysis, populate the
// containers from the outcome. Each accepted upload takes a fresh
// token; a completion only applies if its token is still the newest, so
// a later submission always wins no matter which response lands first.
type Controller struct {
	analyzer Analyzer
	logger   *slog.Logger
	runBase  string

	mu   sync.Mutex
	seq  uint64
	view render.View
}

// NewController returns a Controller with a cleared view. runBase is
// the scan service's public base URL for preview and backup links;
// empty keeps the links relative.
func NewController(analyzer Analyzer, runBase string, logger *slog.Logger) *Controller {
	return &Controller{
		analyzer: analyzer,
		logger:   logger,
		runBase:  strings.TrimRight(runBase, "/"),
		view:     render.EmptyView(),
	}
}

// View returns a snapshot of the current report view.
func (c *Controller) View() render.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Submit runs one upload cycle. A rejected filename leaves the current
// view untouched. An accepted upload immediately clears all containers
// and dismisses any notification, then analyzes; the outcome is
// discarded entirely when a newer upload was accepted in the meantime,
// in which case Submit returns nil. Otherwise the view ends populated
// on success, or cleared with a notification on failure, and the
// returned error reflects this cycle's outcome.
func (c *Controller) Submit(ctx context.Context, filename string, file io.Reader) error {
	if !ValidName(filename) {
		return &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Please upload a .zip",
		}
	}

	c.mu.Lock()
	c.seq++
	token := c.seq
	c.view = render.EmptyView()
	c.mu.Unlock()

	logger := c.logger.With("file_name", filename, "request_id", requestid.FromContext(ctx))

	doc, err := c.analyzer.Analyze(ctx, filename, file)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.seq {
		logger.Info("stale analysis discarded")
		return nil
	}

	if err != nil {
		notice := genericFailure
		var appErr *errs.AppError
		if errors.As(err, &appErr) && appErr.Message != "" {
			notice = appErr.Message
		}
		c.view = render.EmptyView()
		c.view.Notice = notice
		logger.Error("analysis failed", "error", err)
		return err
	}

	if !doc.OK() {
		notice := doc.Error
		if notice == "" {
			notice = genericFailure
		}
		c.view = render.EmptyView()
		c.view.Notice = notice
		logger.Error("analysis rejected", "upstream_status", doc.HTTPStatus, "upstream_error", doc.Error)
		return &errs.AppError{
			Kind:           errs.Rejected,
			UpstreamStatus: doc.HTTPStatus,
			Message:        notice,
		}
	}

	c.view = render.View{
		Metadata: render.NewContainer(render.MetadataSection(doc, c.runBase)),
		Archive:  render.NewContainer(render.ArchiveSection(doc)),
		Checks:   render.NewContainer(render.ChecksSection(doc, c.runBase)),
		Network:  render.NewContainer(render.NetworkSection(doc)),
	}
	logger.Info("analysis complete",
		"run_id", doc.RunID,
		"checks", len(doc.Results),
		"archive_entries", len(doc.Archive),
		"network_requests", len(doc.Runtime.NetworkRequests),
	)
	return nil
}
