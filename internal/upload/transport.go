package upload

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Bahjat/adzip-report/internal/format"
	"github.com/Bahjat/adzip-report/internal/model"
	"github.com/Bahjat/adzip-report/internal/platform/errs"
	"github.com/Bahjat/adzip-report/internal/platform/middleware"
	"github.com/Bahjat/adzip-report/internal/render"
)

// fileField is the multipart field the upload form posts the archive under.
const fileField = "file"

// Settings carries the tunables the transport needs from configuration.
type Settings struct {
	Title          string
	RunBase        string
	MaxUploadBytes int64
	APIKey         string
}

// Transport handles the HTTP surface of the validator: the upload page,
// the browser upload route, and the public base64 API.
type Transport struct {
	analyzer  Analyzer
	logger    *slog.Logger
	title     string
	runBase   string
	maxUpload int64
	apiKey    string
}

// NewTransport creates an HTTP transport backed by the given analyzer.
func NewTransport(analyzer Analyzer, s Settings, logger *slog.Logger) *Transport {
	return &Transport{
		analyzer:  analyzer,
		logger:    logger,
		title:     s.Title,
		runBase:   s.RunBase,
		maxUpload: s.MaxUploadBytes,
		apiKey:    s.APIKey,
	}
}

// RegisterRoutes attaches the transport's handlers to the given mux.
func (t *Transport) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", t.handleIndex)
	mux.HandleFunc("POST /analyze", t.handleAnalyze)
	mux.Handle("POST /api/scanZip", middleware.APIKey(t.apiKey)(http.HandlerFunc(t.handleScanZip)))
}

func (t *Transport) handleIndex(w http.ResponseWriter, _ *http.Request) {
	t.renderPage(w, http.StatusOK, render.EmptyView())
}

// handleAnalyze is the browser path: one multipart upload, one
// controller cycle, and the page rendered from whatever the cycle left
// in the view. Failures come back as the page notification; only
// malformed requests get non-200 statuses.
func (t *Transport) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > t.maxUpload {
		t.renderNotice(w, http.StatusRequestEntityTooLarge, t.tooLargeMessage())
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, t.maxUpload)

	file, header, err := r.FormFile(fileField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			t.renderNotice(w, http.StatusRequestEntityTooLarge, t.tooLargeMessage())
			return
		}
		// A form submitted with nothing selected still carries the
		// field, just with an empty filename, and the multipart parser
		// files that under the plain values.
		if errors.Is(err, http.ErrMissingFile) && len(r.MultipartForm.Value[fileField]) > 0 {
			t.renderNotice(w, http.StatusBadRequest, "No selected file")
			return
		}
		t.renderNotice(w, http.StatusBadRequest, "No file part")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size == 0 {
		t.renderNotice(w, http.StatusBadRequest, "Empty file")
		return
	}
	if !ValidName(header.Filename) {
		// Not an archive: ignored without a message, the page just
		// comes back in its cleared state.
		t.renderPage(w, http.StatusOK, render.EmptyView())
		return
	}

	ctrl := NewController(t.analyzer, t.runBase, t.logger)
	_ = ctrl.Submit(r.Context(), header.Filename, file)
	t.renderPage(w, http.StatusOK, ctrl.View())
}

type scanZipRequest struct {
	Data string `json:"data"`
}

// handleScanZip is the public API path: a base64 ZIP in, the scan
// service's document out, echoed byte for byte. Error documents still
// come back with 200 the way the original API behaved; non-200 answers
// here mean the gateway itself could not complete the scan.
func (t *Transport) handleScanZip(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, t.maxUpload*4/3+1024)

	var req scanZipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.renderError(w, http.StatusBadRequest, "Invalid request body. Please send a JSON object with a \"data\" field.")
		return
	}
	if req.Data == "" {
		t.renderError(w, http.StatusBadRequest, "Missing 'data' (base64 ZIP)")
		return
	}

	raw, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		t.renderError(w, http.StatusBadRequest, "Invalid base64")
		return
	}

	filename := "api_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12] + ".zip"
	doc, err := t.analyzer.Analyze(r.Context(), filename, bytes.NewReader(raw))
	if err != nil {
		t.handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Raw)
}

func (t *Transport) handleServiceError(w http.ResponseWriter, err error) {
	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch appErr.Kind {
		case errs.InvalidInput:
			status = http.StatusBadRequest
		case errs.Unreachable, errs.ParsingFailed:
			status = http.StatusBadGateway
		case errs.Rejected:
			status = http.StatusUnprocessableEntity
		case errs.Unknown:
			// 500 Internal Server Error
		}
		t.renderError(w, status, appErr.Message)
		return
	}

	t.renderError(w, http.StatusInternalServerError, "An unexpected error occurred.")
}

func (t *Transport) tooLargeMessage() string {
	return fmt.Sprintf("Upload too large. Limit is %d MB.", t.maxUpload>>20)
}

func (t *Transport) renderNotice(w http.ResponseWriter, status int, notice string) {
	view := render.EmptyView()
	view.Notice = notice
	t.renderPage(w, status, view)
}

func (t *Transport) renderPage(w http.ResponseWriter, status int, view render.View) {
	page := render.Page{
		Title:     t.title,
		MaxUpload: format.Bytes(t.maxUpload),
		View:      view,
	}

	var buf bytes.Buffer
	if err := render.WritePage(&buf, page); err != nil {
		t.logger.Error("failed to render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) renderJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		t.logger.Error("failed to encode response", "error", err)
		http.Error(w, `{"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) renderError(w http.ResponseWriter, status int, message string) {
	t.renderJSON(w, status, model.ErrorResponse{
		Error:      http.StatusText(status),
		StatusCode: status,
		Message:    message,
	})
}
