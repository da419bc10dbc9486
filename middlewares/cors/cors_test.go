package cors

import (
	"net/http/httptest"
	"testing"

	"github.com/kildevaeld/rask"
	"github.com/kildevaeld/rask/httpcontext"
	"github.com/kildevaeld/strong"
)

func corsServer() *rask.Rask {
	server := rask.New()
	server.Use(New(Config{
		AllowOrigins: []string{"http://example.com"},
	}))
	server.Get("/", func(ctx *httpcontext.Context) error {
		return ctx.Text("ok")
	})
	return server
}

func Test_CORS_AllowedOrigin(suite *testing.T) {
	server := corsServer()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(strong.HeaderOrigin, "http://example.com")
	req.Header.Set(strong.HeaderAccessControlRequestHeaders, "Authorization")
	res := httptest.NewRecorder()
	server.ServeHTTP(res, req)

	suite.Run("reflects requested headers verbatim", func(test *testing.T) {
		if got := res.Header().Get(strong.HeaderAccessControlAllowHeaders); got != "Authorization" {
			test.Fatalf("expected Authorization, got %q", got)
		}
	})

	suite.Run("defaults to GET for allowed methods", func(test *testing.T) {
		if got := res.Header().Get(strong.HeaderAccessControlAllowMethods); got != strong.GET {
			test.Fatalf("expected GET, got %q", got)
		}
	})

	suite.Run("echoes a listed origin", func(test *testing.T) {
		if got := res.Header().Get(strong.HeaderAccessControlAllowOrigin); got != "http://example.com" {
			test.Fatalf("expected the origin back, got %q", got)
		}
	})

	suite.Run("never terminates the chain", func(test *testing.T) {
		if res.Body.String() != "ok" {
			test.Fatalf("expected the route to run, got %q", res.Body.String())
		}
	})
}

func Test_CORS_UnlistedOrigin(suite *testing.T) {
	server := corsServer()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(strong.HeaderOrigin, "http://example.org")
	res := httptest.NewRecorder()
	server.ServeHTTP(res, req)

	if got := res.Header().Get(strong.HeaderAccessControlAllowMethods); got != strong.GET {
		suite.Fatalf("expected the methods header regardless of origin, got %q", got)
	}
	if got := res.Header().Get(strong.HeaderAccessControlAllowOrigin); got != "" {
		suite.Fatalf("expected no allow-origin header, got %q", got)
	}
}

func Test_CORS_ConfiguredMethods(suite *testing.T) {
	server := rask.New()
	server.Use(New(Config{
		AllowOrigins: []string{"http://example.com"},
		AllowMethods: []string{strong.GET, strong.POST, strong.DELETE},
	}))
	server.Get("/", func(ctx *httpcontext.Context) error {
		return ctx.Text("ok")
	})

	req := httptest.NewRequest("GET", "/", nil)
	res := httptest.NewRecorder()
	server.ServeHTTP(res, req)

	if got := res.Header().Get(strong.HeaderAccessControlAllowMethods); got != "GET,POST,DELETE" {
		suite.Fatalf("expected a comma-joined method list, got %q", got)
	}
}
