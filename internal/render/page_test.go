package render

import (
	"bytes"
	"strings"
	"testing"
)

func TestWritePage_EmptyView(t *testing.T) {
	var buf bytes.Buffer
	err := WritePage(&buf, Page{Title: "Ad ZIP Validator", MaxUpload: "25.0 MB", View: EmptyView()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"<title>Ad ZIP Validator</title>",
		`action="/analyze"`,
		`name="file"`,
		`accept=".zip"`,
		"Maximum size 25.0 MB.",
		`<div id="metadata" hidden>`,
		`<div id="archive" hidden>`,
		`<div id="checks" hidden>`,
		`<div id="network" hidden>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(out, `class="notice"`) {
		t.Errorf("empty view should not render a notification")
	}
}

func TestWritePage_NoticeEscaped(t *testing.T) {
	view := EmptyView()
	view.Notice = `<b>failed</b>`

	var buf bytes.Buffer
	if err := WritePage(&buf, Page{Title: "t", View: view}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "&lt;b&gt;failed&lt;/b&gt;") {
		t.Errorf("notification was not escaped:\n%s", out)
	}
	if strings.Contains(out, "<b>failed</b>") {
		t.Errorf("notification markup leaked through:\n%s", out)
	}
}

func TestWritePage_PopulatedContainer(t *testing.T) {
	view := EmptyView()
	view.Metadata = NewContainer("<h3>Scan Metadata</h3>")

	var buf bytes.Buffer
	if err := WritePage(&buf, Page{Title: "t", View: view}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `<div id="metadata"><h3>Scan Metadata</h3></div>`) {
		t.Errorf("fragment not inserted verbatim:\n%s", out)
	}
}

func TestNewContainer(t *testing.T) {
	if c := NewContainer(""); !c.Hidden {
		t.Errorf("empty fragment should stay hidden")
	}
	if c := NewContainer("<p>x</p>"); c.Hidden {
		t.Errorf("non-empty fragment should be visible")
	}
}
