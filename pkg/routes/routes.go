package routes

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/dataset-lab/pkg/openapi"
)

// System accumulates routes and groups and builds the final handler.
type System interface {
	RegisterGroup(group Group)
	RegisterRoute(route Route)
	Build() http.Handler

	// Document adds every route carrying an OpenAPI operation to spec.
	Document(spec *openapi.Spec)
}

type routes struct {
	routes []Route
	groups []Group
	logger *slog.Logger
}

// New creates a route System.
func New(logger *slog.Logger) System {
	return &routes{
		logger: logger.With("system", "routes"),
	}
}

func (r *routes) RegisterRoute(route Route) {
	r.routes = append(r.routes, route)
}

func (r *routes) RegisterGroup(group Group) {
	r.groups = append(r.groups, group)
}

// Build registers every route on a new ServeMux using method patterns.
func (r *routes) Build() http.Handler {
	mux := http.NewServeMux()

	for _, route := range r.routes {
		r.handle(mux, "", route)
	}

	for _, group := range r.groups {
		r.registerGroup(mux, "", group)
	}

	return mux
}

func (r *routes) registerGroup(mux *http.ServeMux, parent string, group Group) {
	prefix := parent + group.Prefix

	for _, route := range group.Routes {
		r.handle(mux, prefix, route)
	}

	for _, child := range group.Children {
		r.registerGroup(mux, prefix, child)
	}
}

func (r *routes) handle(mux *http.ServeMux, prefix string, route Route) {
	pattern := prefix + route.Pattern
	if pattern == "" {
		pattern = "/"
	}
	mux.HandleFunc(route.Method+" "+pattern, route.Handler)
	r.logger.Debug("route registered", "method", route.Method, "pattern", pattern)
}

func (r *routes) Document(spec *openapi.Spec) {
	for _, route := range r.routes {
		document(spec, "", nil, route)
	}

	for _, group := range r.groups {
		r.documentGroup(spec, "", nil, group)
	}
}

func (r *routes) documentGroup(spec *openapi.Spec, parent string, tags []string, group Group) {
	prefix := parent + group.Prefix
	if len(group.Tags) > 0 {
		tags = group.Tags
	}

	for _, route := range group.Routes {
		document(spec, prefix, tags, route)
	}

	for _, child := range group.Children {
		r.documentGroup(spec, prefix, tags, child)
	}
}

func document(spec *openapi.Spec, prefix string, tags []string, route Route) {
	if route.OpenAPI == nil {
		return
	}

	op := *route.OpenAPI
	if len(op.Tags) == 0 {
		op.Tags = tags
	}

	path := prefix + route.Pattern
	if path == "" {
		path = "/"
	}
	spec.AddOperation(route.Method, path, &op)
}
