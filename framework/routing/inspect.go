package routing

import (
	"net/http"
	"sort"

	"github.com/km-arc/hhcontainer/framework/container"
	gohttp "github.com/km-arc/hhcontainer/framework/http"
)

// InspectPrefix is where Inspect mounts its routes.
const InspectPrefix = "/_container"

// BindingView is the JSON shape of one binding.
type BindingView struct {
	ID    string `json:"id"`
	Scope string `json:"scope"`
}

// Inspect mounts read-only container routes:
//
//	GET /_container                → locked flag, module and binding counts
//	GET /_container/bindings       → every binding, sorted by id
//	GET /_container/bindings/{id}  → one binding or 404
//
// Nothing here resolves a binding, so inspecting never runs a factory.
func Inspect(r *Router, c *container.Container) {
	r.Prefix(InspectPrefix, func(r *Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			gohttp.NewResponse(w).Success(map[string]any{
				"locked":   c.Locked(),
				"modules":  c.Modules(),
				"bindings": len(c.Bindings()),
			})
		})

		r.Get("/bindings", func(w http.ResponseWriter, _ *http.Request) {
			gohttp.NewResponse(w).Success(bindingViews(c))
		})

		r.Get("/bindings/{id}", func(w http.ResponseWriter, req *http.Request) {
			id := Param(req, "id")
			scope, ok := c.ScopeOf(id)
			if !ok {
				gohttp.NewResponse(w).NotFound("no binding for " + id)
				return
			}
			gohttp.NewResponse(w).Success(BindingView{ID: id, Scope: scope.String()})
		})
	})
}

func bindingViews(c *container.Container) []BindingView {
	ids := make([]string, 0, len(c.Bindings()))
	for id := range c.Bindings() {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]BindingView, 0, len(ids))
	for _, id := range ids {
		scope, _ := c.ScopeOf(id)
		out = append(out, BindingView{ID: id, Scope: scope.String()})
	}
	return out
}
