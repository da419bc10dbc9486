package matcher

import (
	"testing"
)

func Test_Matcher_Literal(suite *testing.T) {
	rule := Compile("/users")

	suite.Run("matches the exact path", func(test *testing.T) {
		params, ok := rule.Match("/users")
		if !ok {
			test.Fatalf("expected a match")
		}
		if len(params) != 0 {
			test.Fatalf("expected no captures, got %v", params)
		}
	})

	suite.Run("rejects prefixes and suffixes", func(test *testing.T) {
		if _, ok := rule.Match("/users/42"); ok {
			test.Fatalf("matched a longer path")
		}
		if _, ok := rule.Match("/api/users"); ok {
			test.Fatalf("matched a prefixed path")
		}
	})
}

func Test_Matcher_Captures(suite *testing.T) {
	suite.Run("single group", func(test *testing.T) {
		rule := Compile("/users/([^/]+)")
		params, ok := rule.Match("/users/42")
		if !ok {
			test.Fatalf("expected a match")
		}
		if params.At(0) != "42" {
			test.Fatalf("expected capture \"42\" at index 0, got %v", params)
		}
	})

	suite.Run("groups stay ordered", func(test *testing.T) {
		rule := Compile(`/repos/([^/]+)/issues/(\d+)`)
		params, ok := rule.Match("/repos/rask/issues/7")
		if !ok {
			test.Fatalf("expected a match")
		}
		if params.At(0) != "rask" || params.At(1) != "7" {
			test.Fatalf("unexpected captures: %v", params)
		}
	})

	suite.Run("out of range index is empty", func(test *testing.T) {
		rule := Compile("/plain")
		params, _ := rule.Match("/plain")
		if params.At(0) != "" || params.At(-1) != "" {
			test.Fatalf("expected empty strings out of range")
		}
	})
}

func Test_Matcher_Root(suite *testing.T) {
	rule := Root()

	for _, path := range []string{"/", "/users", "/deeply/nested/path"} {
		if _, ok := rule.Match(path); !ok {
			suite.Fatalf("root rule should match %q", path)
		}
	}
}

func Test_Matcher_Prefix(suite *testing.T) {
	rule := Prefix("/api/")

	if _, ok := rule.Match("/api/users"); !ok {
		suite.Fatalf("expected the subtree to match")
	}
	if _, ok := rule.Match("/users"); ok {
		suite.Fatalf("matched outside the subtree")
	}
}
