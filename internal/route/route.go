package route

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angeloszaimis/chatbot-api/internal/rest"
)

// Permission decides whether a request may reach its handler.
type Permission func(*http.Request) bool

// AllowAll grants access unconditionally. The chatbot endpoints are public
// read/write surfaces with no caller identity; this is a deliberate policy,
// not a missing check.
func AllowAll(*http.Request) bool {
	return true
}

// Route binds one method and pattern to a handler behind a permission
// predicate.
type Route struct {
	Method     string
	Pattern    string
	Permission Permission
	Handler    http.HandlerFunc
}

// Register wires the routes onto r. Registration happens once at startup.
func Register(r chi.Router, routes []Route) {
	for _, rt := range routes {
		r.Method(rt.Method, rt.Pattern, guard(rt.Permission, rt.Handler))
	}
}

func guard(permit Permission, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if permit != nil && !permit(r) {
			rest.WriteError(w, rest.CodeForbidden, "Sorry, you are not allowed to do that.", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}
