package handler

import (
	"context"
	"html/template"
	"net/http"

	"github.com/bidhub-api/internal/application/guard"
	"github.com/rs/zerolog/hlog"
)

const defaultTitle = "BidHub"

var shellTemplate = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<div id="app" data-route="{{.Name}}"></div>
</body>
</html>
`))

// ShellSource provides the SPA index document.
type ShellSource interface {
	Shell(ctx context.Context) ([]byte, error)
}

// PagesHandler serves the SPA shell for every known page route. It runs
// behind middleware.RouteGuard.
type PagesHandler struct {
	table *guard.Table
	shell ShellSource
}

// NewPagesHandler returns a handler that serves shell, or the built-in page
// when shell is nil.
func NewPagesHandler(table *guard.Table, shell ShellSource) *PagesHandler {
	return &PagesHandler{table: table, shell: shell}
}

func (h *PagesHandler) Serve(w http.ResponseWriter, r *http.Request) {
	route, ok := h.table.Lookup(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if route.Redirect != "" {
		http.Redirect(w, r, route.Redirect, http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if h.shell != nil {
		body, err := h.shell.Shell(r.Context())
		if err == nil {
			_, _ = w.Write(body)
			return
		}
		hlog.FromRequest(r).Warn().Err(err).Msg("spa shell unavailable; serving built-in page")
	}

	title := route.Title
	if title == "" {
		title = defaultTitle
	}
	if err := shellTemplate.Execute(w, struct{ Title, Name string }{title, route.Name}); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("render shell")
	}
}
