package rask

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/kildevaeld/rask/httpcontext"
	"github.com/kildevaeld/strong"
	"go.uber.org/zap"
)

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

type Options struct {
	Debug bool
	// HandleError observes errors that reached the responder without
	// being claimed by an error handler. It runs before the fallback
	// response is written and cannot change it.
	HandleError func(ctx *httpcontext.Context, err error)
}

// Rask is an http.Handler that dispatches requests over an ordered
// route registry.
type Rask struct {
	noCopy
	registry  *Registry
	listening bool

	s *http.Server
	o *Options
}

func New() *Rask {
	return NewWithOptions(nil)
}

func NewWithOptions(o *Options) *Rask {
	if o == nil {
		o = &Options{}
	}
	v := &Rask{
		s:        &http.Server{},
		registry: NewRegistry(),
		o:        o,
	}

	v.s.Handler = v

	return v
}

// Registry exposes the route table, for callers that register routes
// without the method helpers.
func (v *Rask) Registry() *Registry {
	return v.registry
}

func (v *Rask) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := httpcontext.Run(w, r, v.dispatch); err != nil {
		// the responder already ran; only transport write failures
		// end up here
		zap.L().Error("write response", zap.String("request", r.URL.String()), zap.Error(err))
	}
}

func (v *Rask) Listen(addr string) error {
	if v.listening {
		return errors.New("Already running")
	}
	v.listening = true
	v.s.Addr = addr

	if v.o.Debug {
		zap.L().Debug("listening on", zap.String("addr", addr))
	}
	return v.s.ListenAndServe()
}

func (v *Rask) Close() error {
	if v.s == nil {
		return nil
	}
	return v.s.Close()
}

func (v *Rask) Shutdown(ctx context.Context) error {
	if v.s == nil {
		return nil
	}
	return v.s.Shutdown(ctx)
}

// Use mounts handlers at the root: they are candidates for every
// request, whatever the method or path.
func (v *Rask) Use(handlers ...interface{}) *Rask {
	if err := v.registry.Use(handlers...); err != nil {
		panic(err)
	}
	return v
}

func (v *Rask) Get(path string, handlers ...interface{}) *Rask {
	return v.Route(strong.GET, path, handlers...)
}

func (v *Rask) Post(path string, handlers ...interface{}) *Rask {
	return v.Route(strong.POST, path, handlers...)
}

func (v *Rask) Patch(path string, handlers ...interface{}) *Rask {
	return v.Route(strong.PATCH, path, handlers...)
}

func (v *Rask) Put(path string, handlers ...interface{}) *Rask {
	return v.Route(strong.PUT, path, handlers...)
}

func (v *Rask) Delete(path string, handlers ...interface{}) *Rask {
	return v.Route(strong.DELETE, path, handlers...)
}

func (v *Rask) Head(path string, handlers ...interface{}) *Rask {
	return v.Route(strong.HEAD, path, handlers...)
}

func (v *Rask) Options(path string, handlers ...interface{}) *Rask {
	return v.Route(strong.OPTIONS, path, handlers...)
}

// WebSocket registers a GET route whose final handler upgrades the
// connection and hands it to fn. Handlers before it run as usual, so
// auth middleware still applies.
func (v *Rask) WebSocket(path string, fn func(ctx *httpcontext.Context, conn *websocket.Conn) error, handlers ...interface{}) *Rask {
	handlers = append(handlers, httpcontext.HandlerFunc(func(ctx *httpcontext.Context) error {
		conn, err := ctx.Websocket(nil)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := fn(ctx, conn); err != nil {
			return err
		}
		return httpcontext.ErrHandled
	}))

	return v.Route(strong.GET, path, handlers...)
}

// Route registers handlers for a method and path specifier, one
// registry entry per handler, all in one group. A malformed specifier
// or an unsupported handler type panics: routes are registered during
// configuration and a bad one is a programming error.
func (v *Rask) Route(method, path string, handlers ...interface{}) *Rask {
	if v.o.Debug {
		zap.L().Debug("register route", zap.String("method", method), zap.String("path", path))
	}
	if err := v.registry.Route(method, path, handlers...); err != nil {
		panic(err)
	}
	return v
}
