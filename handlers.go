package rask

import (
	"fmt"
	"net/http"

	"github.com/hashicorp/go-multierror"
	"github.com/kildevaeld/rask/httpcontext"
)

// handler is the tagged handler variant carried by a registry entry:
// exactly one of the two shapes is set. The kind is fixed by the
// static type given at registration, never inferred later.
type handler struct {
	normal httpcontext.HandlerFunc
	catch  httpcontext.ErrorHandlerFunc
}

func toHandler(v interface{}) (handler, error) {
	switch h := v.(type) {
	case httpcontext.HandlerFunc:
		return handler{normal: h}, nil
	case func(*httpcontext.Context) error:
		return handler{normal: h}, nil
	case httpcontext.ErrorHandlerFunc:
		return handler{catch: h}, nil
	case func(error, *httpcontext.Context) error:
		return handler{catch: h}, nil
	case httpcontext.Handler:
		return handler{normal: h.ServeHTTPContext}, nil
	case http.HandlerFunc:
		return handler{normal: httpcontext.HTTPHandler(h)}, nil
	case func(http.ResponseWriter, *http.Request):
		return handler{normal: httpcontext.HTTPHandler(h)}, nil
	case http.Handler:
		return handler{normal: httpcontext.HTTPHandler(h.ServeHTTP)}, nil
	}

	return handler{}, fmt.Errorf("handler is of wrong type '%T'", v)
}

// flatten expands nested handler lists so registration calls can pass
// groups of handlers around as values.
func flatten(handlers []interface{}) []interface{} {
	out := make([]interface{}, 0, len(handlers))
	for _, h := range handlers {
		if nested, ok := h.([]interface{}); ok {
			out = append(out, flatten(nested)...)
			continue
		}
		out = append(out, h)
	}
	return out
}

func toHandlers(handlers []interface{}) ([]handler, error) {
	handlers = flatten(handlers)

	var result *multierror.Error
	out := make([]handler, 0, len(handlers))
	for _, h := range handlers {
		hh, err := toHandler(h)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		out = append(out, hh)
	}

	return out, result.ErrorOrNil()
}
