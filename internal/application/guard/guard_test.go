package guard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := DefaultTable()
	require.NoError(t, err)
	return tbl
}

func TestResolve(t *testing.T) {
	tbl := defaultTable(t)

	tests := []struct {
		name          string
		target        string
		authenticated bool
		wantRedirect  string
	}{
		{"anonymous to protected route", "/tender", false, "/login"},
		{"anonymous to home", "/", false, "/login"},
		{"anonymous to unknown path", "/nope", false, "/login"},
		{"anonymous to login", "/login", false, ""},
		{"signed in to login", "/login", true, "/knowledge"},
		{"signed in to protected route", "/bid-check", true, ""},
		{"signed in to default route", "/knowledge", true, ""},
		{"signed in to unknown path", "/nope", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Resolve(tbl, tt.target, tt.authenticated)
			assert.Equal(t, tt.wantRedirect, d.Redirect)
			assert.Equal(t, tt.wantRedirect == "", d.Proceed())
		})
	}
}

func TestResolve_CustomPublicRoute(t *testing.T) {
	tbl, err := Parse([]byte(`
login: /signin
default: /home
routes:
  - {path: /signin, name: signin, public: true}
  - {path: /home, name: home}
  - {path: /about, name: about, public: true}
`))
	require.NoError(t, err)

	assert.True(t, Resolve(tbl, "/about", false).Proceed())
	assert.True(t, Resolve(tbl, "/about", true).Proceed())
	assert.Equal(t, "/signin", Resolve(tbl, "/home", false).Redirect)
	assert.Equal(t, "/home", Resolve(tbl, "/signin", true).Redirect)
}

func TestDefaultTable(t *testing.T) {
	tbl := defaultTable(t)

	assert.Equal(t, "/login", tbl.LoginPath)
	assert.Equal(t, "/knowledge", tbl.DefaultPath)
	assert.Len(t, tbl.Routes, 7)

	home, ok := tbl.Lookup("/")
	require.True(t, ok)
	assert.Equal(t, "/knowledge", home.Redirect)

	tender, ok := tbl.Lookup("/tender")
	require.True(t, ok)
	assert.Equal(t, "招标文件管理", tender.Title)

	assert.True(t, tbl.IsPublic("/login"))
	assert.False(t, tbl.IsPublic("/settings"))
	assert.False(t, tbl.IsPublic("/missing"))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing login", "default: /a\nroutes:\n  - {path: /a}\n"},
		{"missing default", "login: /a\nroutes:\n  - {path: /a}\n"},
		{"relative path", "login: /a\ndefault: /a\nroutes:\n  - {path: a}\n"},
		{"duplicate path", "login: /a\ndefault: /a\nroutes:\n  - {path: /a}\n  - {path: /a}\n"},
		{"login without route", "login: /login\ndefault: /a\nroutes:\n  - {path: /a}\n"},
		{"login not public", "login: /login\ndefault: /a\nroutes:\n  - {path: /login}\n  - {path: /a}\n"},
		{"malformed yaml", "login: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParse_LoginNotPublicMessage(t *testing.T) {
	_, err := Parse([]byte("login: /login\ndefault: /a\nroutes:\n  - {path: /login}\n  - {path: /a}\n"))
	assert.ErrorContains(t, err, "must be public")
}

func TestLoadTable_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("login: /in\ndefault: /dash\nroutes:\n  - {path: /in, public: true}\n  - {path: /dash}\n"), 0600))

	tbl, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, "/in", tbl.LoginPath)
	assert.True(t, tbl.IsPublic("/in"))
}

func TestLoadTable_EmptyPathUsesEmbedded(t *testing.T) {
	tbl, err := LoadTable("")
	require.NoError(t, err)
	assert.Equal(t, "/login", tbl.LoginPath)
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
