// Package routes registers grouped route definitions on a ServeMux and
// describes them in an OpenAPI document.
package routes

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/roster/pkg/openapi"
)

// Group organizes routes under a common prefix with shared tags.
type Group struct {
	Prefix   string
	Tags     []string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		walk("", group, func(path string, _ []string, route Route) {
			mux.HandleFunc(route.Method+" "+path, route.Handler)
		})
	}
}

// Describe adds every documented route in groups to spec under basePath.
func Describe(spec *openapi.Spec, basePath string, groups ...Group) {
	for _, group := range groups {
		walk(basePath, group, func(path string, tags []string, route Route) {
			if route.OpenAPI == nil {
				return
			}

			op := *route.OpenAPI
			if len(op.Tags) == 0 {
				op.Tags = tags
			}

			key := specPath(path)
			item, ok := spec.Paths[key]
			if !ok {
				item = &openapi.PathItem{}
				spec.Paths[key] = item
			}

			switch route.Method {
			case http.MethodGet:
				item.Get = &op
			case http.MethodPost:
				item.Post = &op
			case http.MethodPut:
				item.Put = &op
			case http.MethodDelete:
				item.Delete = &op
			}
		})
	}
}

func walk(parent string, group Group, fn func(path string, tags []string, route Route)) {
	prefix := parent + group.Prefix
	for _, route := range group.Routes {
		fn(prefix+route.Pattern, group.Tags, route)
	}
	for _, child := range group.Children {
		if len(child.Tags) == 0 {
			child.Tags = group.Tags
		}
		walk(prefix, child, fn)
	}
}

// specPath converts ServeMux wildcards such as {key...} into OpenAPI path parameters.
func specPath(pattern string) string {
	return strings.ReplaceAll(pattern, "...}", "}")
}
