package render

import (
	"strings"
	"testing"
)

func TestBarChart_ProportionalWidths(t *testing.T) {
	out := BarChart([]ChartItem{
		{Name: "a.js", Size: 100},
		{Name: "b.js", Size: 50},
		{Name: "c.js", Size: 0},
	})

	for _, width := range []string{"width:100.0%", "width:50.0%", "width:0.0%"} {
		if !strings.Contains(out, width) {
			t.Errorf("chart missing %q:\n%s", width, out)
		}
	}
}

func TestBarChart_AllZeroSizes(t *testing.T) {
	out := BarChart([]ChartItem{
		{Name: "a.js", Size: 0},
		{Name: "b.js", Size: 0},
	})

	if got := strings.Count(out, "width:0.0%"); got != 2 {
		t.Errorf("zero-width bars = %d, want 2:\n%s", got, out)
	}
	for _, bad := range []string{"NaN", "Inf"} {
		if strings.Contains(out, bad) {
			t.Errorf("chart output contains %q:\n%s", bad, out)
		}
	}
}

func TestBarChart_InputOrder(t *testing.T) {
	out := BarChart([]ChartItem{
		{Name: "small-first", Size: 1},
		{Name: "big-second", Size: 1000},
	})

	if strings.Index(out, "small-first") > strings.Index(out, "big-second") {
		t.Errorf("rows were reordered:\n%s", out)
	}
}

func TestBarChart_LabelEscapedAndTruncated(t *testing.T) {
	out := BarChart([]ChartItem{
		{Name: `<img src=x>` + strings.Repeat("y", 60), Size: 10},
	})

	if strings.Contains(out, "<img") {
		t.Errorf("label was not escaped:\n%s", out)
	}
	if !strings.Contains(out, "…") {
		t.Errorf("long label was not truncated:\n%s", out)
	}
}

func TestBarChart_FormatsValues(t *testing.T) {
	out := BarChart([]ChartItem{{Name: "a.js", Size: 2048}})

	if !strings.Contains(out, "2.0 KB") {
		t.Errorf("chart value not byte-formatted:\n%s", out)
	}
}

func TestBarChart_Empty(t *testing.T) {
	if got := BarChart(nil); got != `<div class="chart"></div>` {
		t.Errorf("BarChart(nil) = %q", got)
	}
}
