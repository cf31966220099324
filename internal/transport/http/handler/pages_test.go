package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bidhub-api/internal/application/guard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubShell struct {
	body []byte
	err  error
}

func (s stubShell) Shell(context.Context) ([]byte, error) { return s.body, s.err }

func newPages(t *testing.T, shell ShellSource) *PagesHandler {
	t.Helper()
	tbl, err := guard.DefaultTable()
	require.NoError(t, err)
	return NewPagesHandler(tbl, shell)
}

func TestPages_BuiltInShell(t *testing.T) {
	h := newPages(t, nil)

	rr := httptest.NewRecorder()
	h.Serve(rr, httptest.NewRequest(http.MethodGet, "/tender", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "<title>招标文件管理</title>")
	assert.Contains(t, rr.Body.String(), `data-route="tender"`)
}

func TestPages_UntitledRouteUsesDefaultTitle(t *testing.T) {
	h := newPages(t, nil)

	rr := httptest.NewRecorder()
	h.Serve(rr, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Contains(t, rr.Body.String(), "<title>BidHub</title>")
}

func TestPages_RouteRedirect(t *testing.T) {
	h := newPages(t, nil)

	rr := httptest.NewRecorder()
	h.Serve(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/knowledge", rr.Header().Get("Location"))
}

func TestPages_UnknownPath(t *testing.T) {
	h := newPages(t, nil)

	rr := httptest.NewRecorder()
	h.Serve(rr, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPages_RemoteShell(t *testing.T) {
	h := newPages(t, stubShell{body: []byte("<html>from bucket</html>")})

	rr := httptest.NewRecorder()
	h.Serve(rr, httptest.NewRequest(http.MethodGet, "/settings", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "<html>from bucket</html>", rr.Body.String())
}

func TestPages_RemoteShellErrorFallsBack(t *testing.T) {
	h := newPages(t, stubShell{err: errors.New("no such key")})

	rr := httptest.NewRecorder()
	h.Serve(rr, httptest.NewRequest(http.MethodGet, "/settings", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<title>系统设置</title>")
}
