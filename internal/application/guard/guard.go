package guard

// Decision is the outcome of a navigation check. An empty Redirect means
// the navigation proceeds unchanged.
type Decision struct {
	Redirect string
}

// Proceed reports whether navigation continues to the requested target.
func (d Decision) Proceed() bool { return d.Redirect == "" }

// Resolve applies the navigation rules for target:
//   - no session and a non-public target redirects to the login route;
//   - a session and the login route as target redirects to the default route;
//   - anything else proceeds.
func Resolve(t *Table, target string, authenticated bool) Decision {
	switch {
	case !t.IsPublic(target) && !authenticated:
		return Decision{Redirect: t.LoginPath}
	case target == t.LoginPath && authenticated:
		return Decision{Redirect: t.DefaultPath}
	default:
		return Decision{}
	}
}
