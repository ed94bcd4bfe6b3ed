package render

import (
	"fmt"
	"strings"

	"github.com/Bahjat/adzip-report/internal/format"
)

// chartLabelMax is the display length a chart row label is cut to.
const chartLabelMax = 40

// ChartItem is one labeled magnitude in a bar chart.
type ChartItem struct {
	Name string
	Size int64
}

// BarChart renders items as horizontal proportional bars, the widest bar
// being the largest size in the set. Rows keep input order. Callers cap
// the list length themselves. The maximum is floored to one so all-zero
// input renders zero-width bars instead of dividing by zero.
func BarChart(items []ChartItem) string {
	max := int64(1)
	for _, it := range items {
		if it.Size > max {
			max = it.Size
		}
	}

	var b strings.Builder
	w := func(s string) { b.WriteString(s) }
	wf := func(f string, args ...any) { fmt.Fprintf(&b, f, args...) }

	w(`<div class="chart">`)
	for _, it := range items {
		pct := float64(it.Size) / float64(max) * 100
		w(`<div class="chart-row">`)
		w(`<span class="chart-label">` + format.Escape(format.Truncate(it.Name, chartLabelMax)) + `</span>`)
		wf(`<span class="chart-track"><span class="chart-fill" style="width:%.1f%%"></span></span>`, pct)
		w(`<span class="chart-value">` + format.Bytes(it.Size) + `</span>`)
		w(`</div>`)
	}
	w(`</div>`)
	return b.String()
}
