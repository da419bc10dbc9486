package httpcontext

import (
	"io"
	"net/http"

	"github.com/kildevaeld/strong"
)

// HandlerFunc is the normal handler shape. Returning nil continues
// the walk unless the context now carries a response; returning
// ErrSkipRoute abandons the rest of the registration group; any other
// error puts the walk into its error phase.
type HandlerFunc func(ctx *Context) error

// ErrorHandlerFunc is the error-handling shape. It is only invoked
// while an error is in flight; returning nil clears it.
type ErrorHandlerFunc func(err error, ctx *Context) error

// Handler is implemented by types that serve requests through a
// Context.
type Handler interface {
	ServeHTTPContext(ctx *Context) error
}

type handlerFuncWrap struct {
	fn HandlerFunc
}

func (h *handlerFuncWrap) ServeHTTPContext(ctx *Context) error {
	return h.fn(ctx)
}

func ToHandler(fn HandlerFunc) Handler {
	return &handlerFuncWrap{fn}
}

// HTTPHandler adapts a plain http handler to the buffered response
// model. The adapter's writes land in the context body, so later
// entries and the responder still run.
func HTTPHandler(fn http.HandlerFunc) HandlerFunc {
	return func(ctx *Context) error {
		writer := newWriterWrapper(ctx)
		defer writer.Close()

		fn(writer, ctx.Request())

		return nil
	}
}

// Run owns one request: it acquires a pooled context, hands it to the
// handler, runs the completion hooks and flushes the buffered
// response. A nil status with a body becomes 200; nothing at all
// becomes a 404. It is the transport-facing entry point the server
// calls per request.
func Run(w http.ResponseWriter, r *http.Request, handler HandlerFunc) error {
	ctx := Acquire(w, r)
	defer Release(ctx)

	err := handler(ctx)

	if err != nil {
		if err == ErrHandled {
			return nil
		}
		return err
	}

	ctx.finish()

	if ctx.HeadersSent() {
		return nil
	}

	status := ctx.StatusCode()
	hasBody := ctx.Body() != nil

	if !hasBody && status <= 0 {
		http.NotFound(w, r)
		return nil
	} else if hasBody && status <= 0 {
		status = strong.StatusOK
	}

	ctx.res.WriteHeader(status)
	if hasBody {
		if _, err := io.Copy(ctx.res.ResponseWriter, ctx.Body()); err != nil {
			return err
		}
	}

	return nil
}
