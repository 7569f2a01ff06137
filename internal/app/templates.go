package app

import (
	"embed"
	"html/template"
	"net/url"
	"strconv"
)

// StaticFiles holds the stylesheet served under /static/
//
//go:embed static/*
var StaticFiles embed.FS

// page is the data handed to the timeline template
type page struct {
	View TimelineView
}

func newPage(v TimelineView) page {
	return page{View: v}
}

// filterQuery holds the selectors shared by every link on the page
func (p page) filterQuery() url.Values {
	q := url.Values{}
	if p.View.Category != All {
		q.Set("category", p.View.Category)
	}
	if p.View.Year != All {
		q.Set("year", p.View.Year)
	}
	return q
}

// Self is the URL of the page as displayed
func (p page) Self() string {
	q := p.filterQuery()
	if p.View.Detail != nil {
		q.Set("event", strconv.Itoa(p.View.Detail.ID))
	}
	return href(q)
}

// EventHref opens the detail view for id, keeping the filters
func (p page) EventHref(id int) string {
	q := p.filterQuery()
	q.Set("event", strconv.Itoa(id))
	return href(q)
}

// CloseHref dismisses the detail view
func (p page) CloseHref() string {
	return href(p.filterQuery())
}

// DownloadHref exports the current display set
func (p page) DownloadHref(format string) string {
	q := p.filterQuery()
	q.Set("format", format)
	return "/api/download?" + q.Encode()
}

func href(q url.Values) string {
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

var tmplFuncs = template.FuncMap{
	"itoa": strconv.Itoa,
	"themeIcon": func(t Theme) string {
		if t == ThemeDark {
			return "🌙"
		}
		return "🌞"
	},
}

func mustParseTemplates() *template.Template {
	return template.Must(template.New("page").Funcs(tmplFuncs).Parse(tmplPage))
}

const tmplPage = `<!DOCTYPE html>
<html lang="en" data-theme="{{.View.Theme}}">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Timeline</title>
<link rel="stylesheet" href="/static/style.css">
</head>
<body{{if .View.Detail}} class="modal-open"{{end}}>
<header class="header">
  <div class="logo">Timeline</div>
  <form method="post" action="/theme">
    <input type="hidden" name="return" value="{{.Self}}">
    <button class="theme-toggle" type="submit" aria-label="Toggle theme">{{themeIcon .View.Theme}}</button>
  </form>
</header>

<form class="filter-panel" method="get" action="/">
  <label>Category:
    <select name="category" onchange="this.form.submit()">
      <option value="All"{{if eq .View.Category "All"}} selected{{end}}>All Categories</option>
      {{- range .View.Options.Categories}}
      <option value="{{.}}"{{if eq . $.View.Category}} selected{{end}}>{{.}}</option>
      {{- end}}
    </select>
  </label>
  <label>Year:
    <select name="year" onchange="this.form.submit()">
      <option value="All"{{if eq .View.Year "All"}} selected{{end}}>All Years</option>
      {{- range .View.Options.Years}}
      <option value="{{.}}"{{if eq (itoa .) $.View.Year}} selected{{end}}>{{.}}</option>
      {{- end}}
    </select>
  </label>
  <noscript><button type="submit">Apply</button></noscript>
  <a class="clear" href="/">Clear filters</a>
  {{- if eq .View.Status "ready"}}
  <span class="downloads"><a href="{{.DownloadHref "csv"}}">CSV</a> · <a href="{{.DownloadHref "json"}}">JSON</a></span>
  {{- end}}
</form>

<main id="timeline" class="timeline timeline-{{.View.Status}}">
{{- if eq .View.Status "ready"}}
  {{- range .View.Events}}
  <article class="timeline-event {{.Side}}" data-event-id="{{.ID}}">
    <div class="timeline-marker"></div>
    <a class="timeline-content" href="{{$.EventHref .ID}}" aria-label="{{.Label}}">
      <div class="timeline-year">{{.Year}}</div>
      <h3 class="timeline-title">{{.Title}}</h3>
      <p class="timeline-description">{{.Excerpt}}</p>
      <span class="timeline-category">{{.Category}}</span>
    </a>
  </article>
  {{- end}}
{{- else}}
  <div class="loading">{{.View.Message}}</div>
{{- end}}
</main>

{{- with .View.Detail}}
<div class="modal active" id="modal">
  <a class="modal-backdrop" href="{{$.CloseHref}}" aria-label="Close"></a>
  <div class="modal-content" role="dialog" aria-modal="true" aria-labelledby="event-modal-title" aria-describedby="event-modal-desc">
    <a class="modal-close" id="modalClose" href="{{$.CloseHref}}" aria-label="Close">&times;</a>
    <div class="modal-body">
      {{- if .ImageURL}}
      <img src="{{.ImageURL}}" alt="{{.Title}}" class="modal-image">
      {{- end}}
      <h2 class="modal-title" id="event-modal-title">{{.Title}}</h2>
      <div class="modal-year">{{.Year}}</div>
      <p class="modal-description" id="event-modal-desc">{{.Description}}</p>
      <span class="modal-category">{{.Category}}</span>
    </div>
  </div>
</div>
<script>
(function () {
  var dialog = document.querySelector('.modal-content');
  document.getElementById('modalClose').focus();
  document.addEventListener('keydown', function (e) {
    if (e.key === 'Escape') { window.location.href = {{$.CloseHref}}; }
  });
  // Tab and Shift+Tab cycle inside the dialog
  dialog.addEventListener('keydown', function (e) {
    if (e.key !== 'Tab') { return; }
    var items = dialog.querySelectorAll('a[href], button, input, select, textarea, [tabindex]:not([tabindex="-1"])');
    if (!items.length) { return; }
    var first = items[0], last = items[items.length - 1];
    if (e.shiftKey && document.activeElement === first) {
      e.preventDefault();
      last.focus();
    } else if (!e.shiftKey && document.activeElement === last) {
      e.preventDefault();
      first.focus();
    }
  });
})();
</script>
{{- end}}
</body>
</html>
`
