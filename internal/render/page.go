package render

import (
	"html/template"
	"io"
)

// Container is one report region of the page: a rendered fragment plus
// the visibility the hosting page applies to it.
type Container struct {
	HTML   template.HTML
	Hidden bool
}

// NewContainer wraps a rendered fragment; empty fragments stay hidden.
func NewContainer(fragment string) Container {
	return Container{HTML: template.HTML(fragment), Hidden: fragment == ""}
}

// View is everything one report cycle shows: the four section
// containers and the single notification slot.
type View struct {
	Notice   string
	Metadata Container
	Archive  Container
	Checks   Container
	Network  Container
}

// EmptyView is the cleared state: all containers empty and hidden, no
// notification.
func EmptyView() View {
	return View{
		Metadata: Container{Hidden: true},
		Archive:  Container{Hidden: true},
		Checks:   Container{Hidden: true},
		Network:  Container{Hidden: true},
	}
}

// Page bundles a view with the static chrome of the upload page.
type Page struct {
	Title     string
	MaxUpload string
	View      View
}

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// WritePage renders the full upload page into w.
func WritePage(w io.Writer, p Page) error {
	return pageTemplate.Execute(w, p)
}

const pageHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body{font:15px/1.5 system-ui,sans-serif;max-width:960px;margin:24px auto;padding:0 16px;color:#222}
h1{font-size:22px}
h3{margin:24px 0 8px}
.upload{border:2px dashed #bbb;border-radius:8px;padding:24px;text-align:center}
.upload p{margin-top:0;color:#555}
.notice{background:#fde7e7;border:1px solid #c62828;border-radius:6px;padding:10px 14px;margin:16px 0}
table{border-collapse:collapse;width:100%;font-size:14px}
th,td{text-align:left;padding:4px 10px;border-bottom:1px solid #eee;vertical-align:top}
th.num,td.num{text-align:right}
table.kv th{width:160px;font-weight:600}
.badge{display:inline-block;padding:1px 8px;border-radius:10px;color:#fff;font-size:12px}
.badge.green,.badge.ok{background:#2e7d32}
.badge.yellow{background:#f9a825}
.badge.red{background:#c62828}
.badge.gray{background:#757575}
.thumbs{display:flex;gap:8px;flex-wrap:wrap;margin:8px 0}
.thumbs img{width:160px;border:1px solid #ddd;border-radius:4px}
.chart{margin:8px 0}
.chart-row{display:flex;align-items:center;gap:8px;margin:2px 0}
.chart-label{flex:0 0 300px;overflow:hidden;white-space:nowrap;font-size:12px}
.chart-track{flex:1;display:block;background:#eee;border-radius:4px;height:10px;overflow:hidden}
.chart-fill{display:block;height:100%;background:#1565c0}
.chart-value{flex:0 0 70px;text-align:right;font-size:12px}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<form id="drop" class="upload" action="/analyze" method="post" enctype="multipart/form-data">
<p>Drop a creative ZIP here or pick a file. Maximum size {{.MaxUpload}}.</p>
<input id="file" type="file" name="file" accept=".zip">
<button type="submit">Validate</button>
</form>
{{if .View.Notice}}<div class="notice" role="alert">{{.View.Notice}}</div>{{end}}
<div id="metadata"{{if .View.Metadata.Hidden}} hidden{{end}}>{{.View.Metadata.HTML}}</div>
<div id="archive"{{if .View.Archive.Hidden}} hidden{{end}}>{{.View.Archive.HTML}}</div>
<div id="checks"{{if .View.Checks.Hidden}} hidden{{end}}>{{.View.Checks.HTML}}</div>
<div id="network"{{if .View.Network.Hidden}} hidden{{end}}>{{.View.Network.HTML}}</div>
</body>
</html>
`
