package adscan

import (
	"context"
	"encoding/json"
	"io"

	"github.com/Bahjat/adzip-report/internal/model"
	"github.com/Bahjat/adzip-report/internal/platform/errs"
)

// Engine turns an uploaded archive into a parsed analysis document.
type Engine struct {
	poster Poster
}

// NewEngine returns an Engine backed by the given Poster.
func NewEngine(poster Poster) *Engine {
	return &Engine{poster: poster}
}

// Analyze submits the archive and decodes the service's answer. The
// body is decoded whatever the HTTP status, because the service reports
// rejected uploads as documents carrying an error field; deciding what
// that means is left to the caller, which gets the upstream status and
// the raw body on the returned document.
func (e *Engine) Analyze(ctx context.Context, filename string, file io.Reader) (*model.Report, error) {
	body, statusCode, err := e.poster.Post(ctx, filename, file)
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.Unreachable,
			Message: "The scan service could not be reached. Try again shortly.",
			Cause:   err,
		}
	}
	defer func() { _ = body.Close() }()

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, &errs.AppError{
			Kind:           errs.Unreachable,
			UpstreamStatus: statusCode,
			Message:        "The scan service connection was interrupted.",
			Cause:          err,
		}
	}

	var doc model.Report
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &errs.AppError{
			Kind:           errs.ParsingFailed,
			UpstreamStatus: statusCode,
			Message:        "The scan service returned an unreadable response.",
			Cause:          err,
		}
	}

	doc.HTTPStatus = statusCode
	doc.Raw = raw
	return &doc, nil
}
