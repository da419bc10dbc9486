package rask

import (
	"strings"

	"github.com/kildevaeld/rask/matcher"
	"github.com/kildevaeld/strong"
	"go.uber.org/zap"
)

// Namespace is the registration surface shared by the server and by
// path-prefixed groups.
type Namespace interface {
	Use(handlers ...interface{}) Namespace
	Get(path string, handlers ...interface{}) Namespace
	Post(path string, handlers ...interface{}) Namespace
	Put(path string, handlers ...interface{}) Namespace
	Patch(path string, handlers ...interface{}) Namespace
	Delete(path string, handlers ...interface{}) Namespace
	Head(path string, handlers ...interface{}) Namespace
	Options(path string, handlers ...interface{}) Namespace
	Route(method, path string, handlers ...interface{}) Namespace
	Group(prefix string) Namespace
}

// Group registers routes under a path prefix. Entries land in the
// parent registry in call order, so the flat dispatch walk stays the
// single source of truth.
type Group struct {
	prefix   string
	registry *Registry
}

// Group returns a namespace that prefixes every registered path.
func (v *Rask) Group(prefix string) Namespace {
	return &Group{prefix: strings.TrimSuffix(prefix, "/"), registry: v.registry}
}

func (g *Group) join(path string) string {
	if path == "" || path == "/" {
		if g.prefix == "" {
			return "/"
		}
		return g.prefix
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return g.prefix + path
}

// Use mounts handlers for the group's subtree: any method, any path
// below the prefix.
func (g *Group) Use(handlers ...interface{}) Namespace {
	hs, err := toHandlers(handlers)
	if err != nil {
		panic(err)
	}
	if len(hs) > 0 {
		g.registry.append("", matcher.Prefix(g.prefix+"/"), hs)
	}
	return g
}

func (g *Group) Get(path string, handlers ...interface{}) Namespace {
	return g.Route(strong.GET, path, handlers...)
}

func (g *Group) Post(path string, handlers ...interface{}) Namespace {
	return g.Route(strong.POST, path, handlers...)
}

func (g *Group) Put(path string, handlers ...interface{}) Namespace {
	return g.Route(strong.PUT, path, handlers...)
}

func (g *Group) Patch(path string, handlers ...interface{}) Namespace {
	return g.Route(strong.PATCH, path, handlers...)
}

func (g *Group) Delete(path string, handlers ...interface{}) Namespace {
	return g.Route(strong.DELETE, path, handlers...)
}

func (g *Group) Head(path string, handlers ...interface{}) Namespace {
	return g.Route(strong.HEAD, path, handlers...)
}

func (g *Group) Options(path string, handlers ...interface{}) Namespace {
	return g.Route(strong.OPTIONS, path, handlers...)
}

func (g *Group) Route(method, path string, handlers ...interface{}) Namespace {
	p := g.join(path)

	zap.L().Debug("register route", zap.String("method", method), zap.String("path", p))

	if err := g.registry.Route(method, p, handlers...); err != nil {
		panic(err)
	}
	return g
}

func (g *Group) Group(prefix string) Namespace {
	return &Group{prefix: g.join(strings.TrimSuffix(prefix, "/")), registry: g.registry}
}
