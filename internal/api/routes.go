package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Access states what a caller must present to use an operation.
type Access int

const (
	// AccessPublic operations need no credentials.
	AccessPublic Access = iota
	// AccessBearer operations need a valid bearer token.
	AccessBearer
)

// String implements fmt.Stringer.
func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessBearer:
		return "bearer"
	default:
		return "unknown"
	}
}

// Route is one row of the capability table.
type Route struct {
	Method  string
	Pattern string
	Access  Access
	Handler http.HandlerFunc
}

// Routes returns the capability table: every operation the API exposes and
// the access it requires.
func Routes(tasks *TaskHandler, users *AuthHandler) []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "/tasks", Access: AccessPublic, Handler: tasks.ListTasks},
		{Method: http.MethodPost, Pattern: "/tasks", Access: AccessBearer, Handler: tasks.CreateTask},
		{Method: http.MethodPut, Pattern: "/tasks/{id}", Access: AccessBearer, Handler: tasks.UpdateTask},
		{Method: http.MethodDelete, Pattern: "/tasks/{id}", Access: AccessBearer, Handler: tasks.DeleteTask},
		{Method: http.MethodPost, Pattern: "/users/register", Access: AccessPublic, Handler: users.Register},
		{Method: http.MethodPost, Pattern: "/users/login", Access: AccessPublic, Handler: users.Login},
	}
}

// Mount registers routes on r. Every route that is not AccessPublic is
// wrapped in authenticate.
func Mount(r chi.Router, routes []Route, authenticate func(http.Handler) http.Handler) {
	for _, route := range routes {
		var h http.Handler = route.Handler
		if route.Access != AccessPublic {
			h = authenticate(h)
		}
		r.Method(route.Method, route.Pattern, h)
	}
}
