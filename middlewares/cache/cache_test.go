package cache

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kildevaeld/rask"
	"github.com/kildevaeld/rask/httpcontext"
	"github.com/kildevaeld/strong"
)

func cachedServer(handler httpcontext.HandlerFunc) *rask.Rask {
	server := rask.New()
	server.Use(handler)
	server.Get("/", func(ctx *httpcontext.Context) error {
		return ctx.Text("payload")
	})
	server.Get("/missing", func(ctx *httpcontext.Context) error {
		return strong.NewHTTPError(strong.StatusNotFound)
	})
	return server
}

func Test_CacheControl(suite *testing.T) {
	server := cachedServer(NewCacheControl(&CacheControl{MaxAge: 60}))

	suite.Run("successful responses get cache headers", func(test *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		res := httptest.NewRecorder()
		server.ServeHTTP(res, req)

		if got := res.Header().Get(strong.HeaderCacheControl); got != "public, max-age=60" {
			test.Fatalf("unexpected cache-control: %q", got)
		}
		if res.Header().Get("expires") == "" {
			test.Fatalf("expected an expires header")
		}
	})

	suite.Run("no-cache requests are left alone", func(test *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(strong.HeaderCacheControl, "no-cache")
		res := httptest.NewRecorder()
		server.ServeHTTP(res, req)

		if got := res.Header().Get(strong.HeaderCacheControl); got != "" {
			test.Fatalf("expected no cache-control, got %q", got)
		}
	})

	suite.Run("failures are not cached", func(test *testing.T) {
		req := httptest.NewRequest("GET", "/missing", nil)
		res := httptest.NewRecorder()
		server.ServeHTTP(res, req)

		if got := res.Header().Get(strong.HeaderCacheControl); got != "" {
			test.Fatalf("expected no cache-control on a 404, got %q", got)
		}
	})
}

func Test_Etag(suite *testing.T) {
	server := cachedServer(NewEtag(nil))

	req := httptest.NewRequest("GET", "/", nil)
	res := httptest.NewRecorder()
	server.ServeHTTP(res, req)

	tag := res.Header().Get("Etag")

	suite.Run("buffered bodies get a tag", func(test *testing.T) {
		if tag == "" || !strings.HasPrefix(tag, `"`) {
			test.Fatalf("unexpected tag: %q", tag)
		}
	})

	suite.Run("a matching revalidation turns into 304", func(test *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("If-None-Match", tag)
		res := httptest.NewRecorder()
		server.ServeHTTP(res, req)

		if res.Code != strong.StatusNotModified {
			test.Fatalf("expected 304, got %d", res.Code)
		}
		if res.Body.Len() != 0 {
			test.Fatalf("expected an empty body, got %q", res.Body.String())
		}
	})

	suite.Run("weak tags are marked", func(test *testing.T) {
		server := cachedServer(NewEtag(&Etag{Weak: true}))
		req := httptest.NewRequest("GET", "/", nil)
		res := httptest.NewRecorder()
		server.ServeHTTP(res, req)

		if got := res.Header().Get("Etag"); !strings.HasPrefix(got, "W/") {
			test.Fatalf("expected a weak tag, got %q", got)
		}
	})
}
