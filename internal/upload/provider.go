package upload

import (
	"context"
	"io"

	"github.com/Bahjat/adzip-report/internal/model"
)

// Analyzer defines the contract for whatever turns an uploaded archive
// into an analysis document.
type Analyzer interface {
	Analyze(ctx context.Context, filename string, file io.Reader) (*model.Report, error)
}
