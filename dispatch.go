package rask

import (
	"errors"
	"fmt"

	"github.com/kildevaeld/rask/httpcontext"
	"github.com/kildevaeld/strong"
)

// dispatch walks the registry for one request. The walk carries an
// in-flight error: while one is set, only error-shape entries are
// candidates; without one, only normal entries are. Method or path
// mismatches skip the entry and keep the error as it is. The walk
// ends when an invoked handler produces a response, or when the
// registry is exhausted and the responder takes over.
func (v *Rask) dispatch(ctx *httpcontext.Context) error {
	entries := v.registry.snapshot()
	req := ctx.Request()
	path := req.URL.Path

	var current error
	i := 0
	for i < len(entries) {
		e := entries[i]

		if e.method != "" && e.method != req.Method {
			i++
			continue
		}

		params, ok := e.rule.Match(path)
		if !ok {
			i++
			continue
		}

		ctx.SetParams(params)

		var err error
		switch {
		case current != nil && e.handler.catch != nil:
			err = invokeCatch(e.handler.catch, current, ctx)
		case current == nil && e.handler.normal != nil:
			err = invoke(e.handler.normal, ctx)
		default:
			// entry shape does not fit the current phase
			i++
			continue
		}

		switch {
		case err == nil:
			if ctx.Written() {
				return nil
			}
			current = nil
			i++
		case errors.Is(err, httpcontext.ErrHandled):
			return httpcontext.ErrHandled
		case errors.Is(err, httpcontext.ErrSkipRoute):
			current = nil
			for i < len(entries) && entries[i].group == e.group {
				i++
			}
		default:
			current = err
			i++
		}
	}

	return v.respond(current, ctx)
}

// invoke runs a normal handler, converting a synchronous panic into
// an in-flight error. Failures raised after the call frame returned
// (a goroutine the handler spawned) are not observable here.
func invoke(h httpcontext.HandlerFunc, ctx *httpcontext.Context) (err error) {
	defer func() {
		if e := recover(); e != nil {
			if perr, ok := e.(error); ok {
				err = perr
			} else {
				err = fmt.Errorf("%v", e)
			}
		}
	}()
	return h(ctx)
}

// invokeCatch runs an error-shape handler. Its own failures are
// re-captured and keep propagating forward like any other error.
func invokeCatch(h httpcontext.ErrorHandlerFunc, current error, ctx *httpcontext.Context) (err error) {
	defer func() {
		if e := recover(); e != nil {
			if perr, ok := e.(error); ok {
				err = perr
			} else {
				err = fmt.Errorf("%v", e)
			}
		}
	}()
	return h(current, ctx)
}

// respond is the last line of defense once the registry is exhausted.
// With headers already on the wire it only terminates the response.
// Recognized error carriers keep their own status; everything else is
// a fixed 500, and no error at all is a fixed 404.
func (v *Rask) respond(err error, ctx *httpcontext.Context) error {
	if err != nil && v.o.HandleError != nil {
		v.o.HandleError(ctx, err)
	}

	if ctx.HeadersSent() {
		return httpcontext.ErrHandled
	}

	if err == nil {
		ctx.SetStatusCode(strong.StatusNotFound)
		return ctx.Text(strong.StatusText(strong.StatusNotFound))
	}

	switch e := err.(type) {
	case *strong.HttpError:
		ctx.SetStatusCode(e.StatusCode())
		return ctx.Text(e.Error())
	case *httpcontext.RedirectError:
		ctx.Header().Set(strong.HeaderLocation, e.URL())
		ctx.SetStatusCode(e.StatusCode())
		return nil
	}

	ctx.SetStatusCode(strong.StatusInternalServerError)
	return ctx.Text(strong.StatusText(strong.StatusInternalServerError))
}
