package middleware

import (
	"net/http"

	"github.com/bidhub-api/internal/application/guard"
	"github.com/rs/zerolog/hlog"
)

// RouteGuard applies the navigation rules of table to every page request.
// Redirects are sent as 302 Found. A failed session lookup counts as signed out.
func RouteGuard(table *guard.Table, lookup SessionLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if token := TokenFromRequest(r); token != "" {
				sess, err := lookup.Lookup(ctx, token)
				if err != nil {
					hlog.FromRequest(r).Warn().Err(err).Msg("session lookup failed; treating as signed out")
				} else if sess != nil {
					ctx = WithSession(ctx, sess)
				}
			}
			_, signedIn := SessionFromContext(ctx)

			d := guard.Resolve(table, r.URL.Path, signedIn)
			if !d.Proceed() {
				hlog.FromRequest(r).Debug().
					Str("target", r.URL.Path).
					Str("redirect", d.Redirect).
					Bool("signed_in", signedIn).
					Msg("route guard redirect")
				http.Redirect(w, r, d.Redirect, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
