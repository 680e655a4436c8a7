package web

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-echarts/go-echarts/v2/components"
	"go.uber.org/zap"
)

var navPages = []navLink{
	{Name: "Overview", Href: "/"},
	{Name: "Sales", Href: "/sales"},
	{Name: "Products", Href: "/products"},
	{Name: "Inventory", Href: "/inventory"},
	{Name: "Marketing", Href: "/marketing"},
	{Name: "Customers", Href: "/customers"},
	{Name: "Exports", Href: "/exports"},
}

// renderPage renders the charts through go-echarts and splices the page
// shell (nav, filters, KPIs, tables) into the generated document.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, sh shell, charts ...components.Charter) {
	sh.BoardTitle = s.opts.Title
	query := sh.Filters.Query()
	sh.Nav = make([]navLink, len(navPages))
	for i, link := range navPages {
		sh.Nav[i] = navLink{
			Name:   link.Name,
			Href:   link.Href + query,
			Active: link.Name == sh.Active,
		}
	}

	page := components.NewPage()
	page.PageTitle = sh.PageTitle + " · " + sh.BoardTitle
	if len(charts) > 0 {
		page.AddCharts(charts...)
	}

	var doc bytes.Buffer
	if err := page.Render(&doc); err != nil {
		s.log.Error("render charts", zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	var head bytes.Buffer
	if err := headTmpl.Execute(&head, map[string]template.CSS{"CSS": template.CSS(s.css)}); err != nil {
		s.log.Error("render head", zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	var body bytes.Buffer
	if err := shellTmpl.Execute(&body, sh); err != nil {
		s.log.Error("render shell", zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	html := doc.String()
	html = strings.Replace(html, "</head>", head.String()+"</head>", 1)
	html = strings.Replace(html, "<body>", "<body>\n"+body.String(), 1)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

// renderError shows a filter validation failure in the shell without charts.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, sh shell, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	sh.Notices = append(sh.Notices, msg)
	s.renderPage(w, r, sh)
}
