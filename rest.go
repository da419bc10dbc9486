package rask

import (
	"github.com/kildevaeld/rask/httpcontext"
	"github.com/kildevaeld/strong"
)

// idPattern captures the id segment of item routes; handlers read it
// at params index 0.
const idPattern = "/([^/]+)"

// Rest registers the conventional CRUD routes for a named resource
// under /<name>.
type Rest struct {
	name  string
	group Namespace
}

func (v *Rask) Rest(name string) *Rest {
	return &Rest{name: name, group: v.Group("/" + name)}
}

// normalizeHandlers lets the terminal handler take the item id as an
// argument instead of digging it out of the params.
func normalizeHandlers(handlers []interface{}) []interface{} {
	lastIndex := len(handlers) - 1
	if fn, ok := handlers[lastIndex].(func(ctx *httpcontext.Context, id string) error); ok {
		handlers[lastIndex] = func(ctx *httpcontext.Context) error {
			id := ctx.Params().At(0)
			if id == "" {
				return strong.NewHTTPError(strong.StatusBadRequest)
			}
			return fn(ctx, id)
		}
	}
	return handlers
}

func (r *Rest) Create(handlers ...interface{}) *Rest {
	if len(handlers) == 0 {
		return r
	}
	r.group.Post("/", handlers...)
	return r
}

func (r *Rest) List(handlers ...interface{}) *Rest {
	if len(handlers) == 0 {
		return r
	}
	r.group.Get("/", handlers...)
	return r
}

func (r *Rest) Get(handlers ...interface{}) *Rest {
	if len(handlers) == 0 {
		return r
	}
	r.group.Get(idPattern, normalizeHandlers(handlers)...)
	return r
}

func (r *Rest) Update(handlers ...interface{}) *Rest {
	if len(handlers) == 0 {
		return r
	}
	r.group.Put(idPattern, normalizeHandlers(handlers)...)
	return r
}

func (r *Rest) Patch(handlers ...interface{}) *Rest {
	if len(handlers) == 0 {
		return r
	}
	r.group.Patch(idPattern, normalizeHandlers(handlers)...)
	return r
}

func (r *Rest) Delete(handlers ...interface{}) *Rest {
	if len(handlers) == 0 {
		return r
	}
	r.group.Delete(idPattern, normalizeHandlers(handlers)...)
	return r
}
