package web

import (
	"embed"
	"html/template"
)

//go:embed static/*
var staticFiles embed.FS

//go:embed notes.md
var notesMarkdown []byte

// shell is everything rendered around the charts: navigation, the filter
// form, KPI cards, notices, and tables.
type shell struct {
	BoardTitle string
	PageTitle  string
	Active     string
	Nav        []navLink
	Filters    filterForm
	KPIs       []kpiCard
	Notices    []string
	Tables     []tableSection
	ExportCSV  string
	ExportJSON string
	NotesHTML  template.HTML
}

type navLink struct {
	Name   string
	Href   string
	Active bool
}

type kpiCard struct {
	Title string
	Value string
	Delta string
}

type tableSection struct {
	Title   string
	Columns []string
	Rows    [][]string
	Note    string
}

const headSnippet = `<style>
{{.CSS}}
</style>
`

const shellSnippet = `<div class="topbar">
  <span class="brand">{{.BoardTitle}}</span>
  <nav>
  {{- range .Nav}}
    <a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Name}}</a>
  {{- end}}
  </nav>
</div>
<h1 class="page-title">{{.PageTitle}}</h1>
<form method="get" class="filters">
  <label>From
    <input type="date" name="from" value="{{.Filters.From}}">
  </label>
  <label>To
    <input type="date" name="to" value="{{.Filters.To}}">
  </label>
  <label>Category
    <select name="category">
      <option value="">All</option>
      {{- range .Filters.Categories}}
      <option value="{{.}}"{{if eq . $.Filters.Category}} selected{{end}}>{{.}}</option>
      {{- end}}
    </select>
  </label>
  <label>Channel
    <select name="channel">
      <option value="">All</option>
      {{- range .Filters.Channels}}
      <option value="{{.}}"{{if eq . $.Filters.Channel}} selected{{end}}>{{.}}</option>
      {{- end}}
    </select>
  </label>
  {{- if .Filters.ShowGran}}
  <label>Granularity
    <select name="gran">
      <option value="day"{{if eq .Filters.Gran "day"}} selected{{end}}>Daily</option>
      <option value="week"{{if eq .Filters.Gran "week"}} selected{{end}}>Weekly</option>
      <option value="month"{{if eq .Filters.Gran "month"}} selected{{end}}>Monthly</option>
    </select>
  </label>
  <label>Top N products
    <input type="number" name="top" min="3" max="20" value="{{.Filters.TopN}}">
  </label>
  {{- end}}
  {{- if .Filters.ShowThreshold}}
  <label>Stock threshold
    <input type="number" name="threshold" min="0" value="{{.Filters.Threshold}}">
  </label>
  {{- end}}
  <button type="submit">Apply</button>
</form>
{{- if .KPIs}}
<div class="kpi-grid">
  {{- range .KPIs}}
  <div class="kpi-card">
    <div class="kpi-title">{{.Title}}</div>
    <div class="kpi-value">{{.Value}}</div>
    <div class="kpi-delta">{{.Delta}}</div>
  </div>
  {{- end}}
</div>
{{- end}}
{{- range .Notices}}
<div class="notice">{{.}}</div>
{{- end}}
{{- if .ExportCSV}}
<div class="export-actions">
  <a href="{{.ExportCSV}}">Download CSV</a>
  <a href="{{.ExportJSON}}">Download JSON</a>
</div>
{{- end}}
{{- range .Tables}}
<div class="table-section">
  <h3>{{.Title}}</h3>
  <table>
    <thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
    <tbody>
    {{- range .Rows}}
      <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
    {{- end}}
    </tbody>
  </table>
  {{- if .Note}}<div class="table-note">{{.Note}}</div>{{end}}
</div>
{{- end}}
{{- if .NotesHTML}}
<div class="notes">{{.NotesHTML}}</div>
{{- end}}
`

var (
	headTmpl  = template.Must(template.New("head").Parse(headSnippet))
	shellTmpl = template.Must(template.New("shell").Parse(shellSnippet))
)
