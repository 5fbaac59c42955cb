// Package routes registers grouped HTTP routes on a ServeMux and documents
// them as OpenAPI operations.
package routes

import (
	"net/http"

	"github.com/JaimeStill/dataset-lab/pkg/openapi"
)

// Group is a collection of routes and child groups under a common prefix.
// Tags apply to every documented route in the group that has none of its own.
type Group struct {
	Prefix   string
	Tags     []string
	Routes   []Route
	Children []Group
}

// Route binds a method and pattern to a handler. Pattern is relative to its group prefix.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}
