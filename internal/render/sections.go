package render

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Bahjat/adzip-report/internal/format"
	"github.com/Bahjat/adzip-report/internal/model"
)

// maxChartEntries caps how many network requests feed the size chart.
// The table below the chart still lists every request.
const maxChartEntries = 12

// metadataRows fixes the display order of the metadata table, so the
// same document always renders the same fragment.
var metadataRows = []struct {
	key   string
	label string
}{
	{"scan_type", "Scan Type"},
	{"api_version", "API Version"},
	{"unix_timestamp", "Timestamp"},
	{"scan_duration", "Scan Duration"},
	{"creative_type", "Creative Type"},
	{"original_name", "File Name"},
	{"device", "Device"},
	{"language", "Language"},
	{"user_agent", "User Agent"},
}

// metadataDefaults is the fallback the received metadata is merged over.
// Keys not listed default to empty display.
var metadataDefaults = map[string]any{
	"scan_type":     "Web scan",
	"api_version":   "v1",
	"creative_type": "HTML5 Zip",
	"device":        "Desktop",
	"language":      "en-US",
}

// MetadataSection renders the scan metadata as a key/value table ending
// with the preview link for the run. runBase is the scan service's
// public base URL; empty means the service is reachable on the same
// origin.
func MetadataSection(doc *model.Report, runBase string) string {
	merged := make(map[string]any, len(metadataDefaults)+len(doc.Metadata))
	for k, v := range metadataDefaults {
		merged[k] = v
	}
	for k, v := range doc.Metadata {
		merged[k] = v
	}

	var b strings.Builder
	w := func(s string) { b.WriteString(s) }

	w(`<h3>Scan Metadata</h3><table class="kv"><tbody>`)
	for _, row := range metadataRows {
		w(`<tr><th>` + row.label + `</th><td>` + format.Escape(metaValue(row.key, merged[row.key])) + `</td></tr>`)
	}
	w(`<tr><th>Preview</th><td><a href="` + format.Escape(previewLink(runBase, doc.RunID)) + `" target="_blank" rel="noopener">Open preview</a></td></tr>`)
	w(`</tbody></table>`)
	return b.String()
}

// metaValue turns one metadata field into display text. Timestamps and
// durations arrive as JSON numbers and read better as wall-clock text
// and seconds; everything else displays as received.
func metaValue(key string, v any) string {
	switch key {
	case "unix_timestamp":
		if f, ok := v.(float64); ok {
			return time.Unix(int64(f), 0).UTC().Format("2006-01-02 15:04:05 UTC")
		}
	case "scan_duration":
		if f, ok := v.(float64); ok {
			return strconv.FormatFloat(f, 'f', -1, 64) + " s"
		}
	}
	return format.Display(v)
}

// ArchiveSection renders the archive listing in document order. An
// empty or absent archive still renders the table, just with no rows.
func ArchiveSection(doc *model.Report) string {
	var b strings.Builder
	w := func(s string) { b.WriteString(s) }

	w(`<h3>Archive Contents</h3><table class="archive"><thead><tr><th></th><th>Name</th><th class="num">Size</th><th class="num">Compressed</th></tr></thead><tbody>`)
	for _, entry := range doc.Archive {
		glyph := "📄"
		if entry.IsDir {
			glyph = "📁"
		}
		w(`<tr><td>` + glyph + `</td><td>` + format.Escape(entry.Name) + `</td>`)
		w(`<td class="num">` + format.Bytes(entry.Size) + `</td><td class="num">` + format.Bytes(entry.Compressed) + `</td></tr>`)
	}
	w(`</tbody></table>`)
	return b.String()
}

// ChecksSection renders the captured animation frames followed by the
// check results. Each frame links to its backup download, keyed by the
// capture timestamp the way the scan service expects it.
func ChecksSection(doc *model.Report, runBase string) string {
	var b strings.Builder
	w := func(s string) { b.WriteString(s) }

	w(`<h3>Validation Checks</h3>`)
	if len(doc.Thumbnails) > 0 {
		w(`<div class="thumbs">`)
		for _, thumb := range doc.Thumbnails {
			t := strconv.FormatFloat(thumb.TimeSec, 'f', -1, 64)
			w(`<a href="` + format.Escape(backupLink(runBase, doc.RunID, t)) + `" download>`)
			w(`<img src="` + format.Escape(thumb.PNG) + `" alt="Frame at ` + format.Escape(t) + `s">`)
			w(`</a>`)
		}
		w(`</div>`)
	}

	w(`<table class="checks"><thead><tr><th>Category</th><th>Check</th><th>Result</th></tr></thead><tbody>`)
	for _, row := range doc.Results {
		category := row.Category
		if category == "" {
			category = "-"
		}
		w(`<tr><td>` + format.Escape(category) + `</td>`)
		if row.Help != "" {
			w(`<td title="` + format.Escape(row.Help) + `">` + format.Escape(row.Label) + `</td>`)
		} else {
			w(`<td>` + format.Escape(row.Label) + `</td>`)
		}
		w(`<td><span class="badge ` + format.Escape(row.Status) + `">` + format.Escape(row.Value) + `</span></td></tr>`)
	}
	w(`</tbody></table>`)
	return b.String()
}

// NetworkSection renders the observed network activity: a size chart of
// the first requests followed by a table of all of them. No requests
// means no section; the caller keeps the container hidden.
func NetworkSection(doc *model.Report) string {
	requests := doc.Runtime.NetworkRequests
	if len(requests) == 0 {
		return ""
	}

	charted := requests
	if len(charted) > maxChartEntries {
		charted = charted[:maxChartEntries]
	}
	items := make([]ChartItem, 0, len(charted))
	for _, req := range charted {
		var size int64
		if req.Bytes != nil {
			size = *req.Bytes
		}
		items = append(items, ChartItem{Name: format.ShortenURL(req.URL), Size: size})
	}

	var b strings.Builder
	w := func(s string) { b.WriteString(s) }

	w(`<h3>Network Requests</h3>`)
	w(BarChart(items))
	w(`<table class="network"><thead><tr><th>URL</th><th>Status</th><th>Protocol</th><th>Encoding</th><th class="num">Size</th><th>Type</th></tr></thead><tbody>`)
	for _, req := range requests {
		status := ""
		if req.Status != nil {
			status = strconv.Itoa(*req.Status)
		}
		size := ""
		if req.Bytes != nil && *req.Bytes != 0 {
			size = format.Bytes(*req.Bytes)
		}
		w(`<tr><td>` + format.Escape(format.ShortenURL(req.URL)) + `</td>`)
		w(`<td>` + status + `</td>`)
		w(`<td>` + format.Escape(req.Protocol) + `</td>`)
		w(`<td>` + format.Escape(req.Encoding) + `</td>`)
		w(`<td class="num">` + size + `</td>`)
		w(`<td>` + format.Escape(req.Type) + `</td></tr>`)
	}
	w(`</tbody></table>`)
	return b.String()
}

func previewLink(runBase, runID string) string {
	return fmt.Sprintf("%s/runs/%s/view", runBase, url.PathEscape(runID))
}

func backupLink(runBase, runID, t string) string {
	return fmt.Sprintf("%s/runs/%s/backup.png?t=%s", runBase, url.PathEscape(runID), url.QueryEscape(t))
}
