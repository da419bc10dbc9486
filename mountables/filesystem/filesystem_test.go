package filesystem

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/kildevaeld/rask"
	"github.com/kildevaeld/rask/httpcontext"
	"github.com/kildevaeld/strong"
)

func Test_Filesystem(suite *testing.T) {
	dir := suite.TempDir()
	if err := ioutil.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hello file"), 0644); err != nil {
		suite.Fatalf("could not seed file: %s", err)
	}

	server := rask.New()
	server.Use(New(http.Dir(dir)))
	server.Get("/route", func(ctx *httpcontext.Context) error {
		return ctx.Text("from route")
	})

	suite.Run("serves an existing file", func(test *testing.T) {
		req := httptest.NewRequest("GET", "/hello.txt", nil)
		res := httptest.NewRecorder()
		server.ServeHTTP(res, req)

		if res.Code != strong.StatusOK || res.Body.String() != "hello file" {
			test.Fatalf("got %d %q", res.Code, res.Body.String())
		}
	})

	suite.Run("falls through to later routes", func(test *testing.T) {
		req := httptest.NewRequest("GET", "/route", nil)
		res := httptest.NewRecorder()
		server.ServeHTTP(res, req)

		if res.Body.String() != "from route" {
			test.Fatalf("expected the route to answer, got %q", res.Body.String())
		}
	})

	suite.Run("misses end in 404", func(test *testing.T) {
		req := httptest.NewRequest("GET", "/nope.txt", nil)
		res := httptest.NewRecorder()
		server.ServeHTTP(res, req)

		if res.Code != strong.StatusNotFound {
			test.Fatalf("expected 404, got %d", res.Code)
		}
	})

	suite.Run("writes are not served", func(test *testing.T) {
		req := httptest.NewRequest("POST", "/hello.txt", nil)
		res := httptest.NewRecorder()
		server.ServeHTTP(res, req)

		if res.Code != strong.StatusNotFound {
			test.Fatalf("expected 404 for a POST, got %d", res.Code)
		}
	})
}
