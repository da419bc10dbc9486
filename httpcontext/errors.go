package httpcontext

import (
	"errors"
)

// RedirectError asks the responder to reply with a redirect. Handlers
// return it through Context.Redirect.
type RedirectError struct {
	status int
	url    string
}

func (r *RedirectError) Error() string {
	return r.url
}

// StatusCode returns the redirect status.
func (r *RedirectError) StatusCode() int {
	return r.status
}

// URL returns the redirect target.
func (r *RedirectError) URL() string {
	return r.url
}

var (
	// ErrHandled signals that a handler took over the raw response
	// (a websocket upgrade, a hijacked connection) and nothing more
	// may be written.
	ErrHandled = errors.New("already handled")

	// ErrSkipRoute signals that the rest of the current registration
	// group should be abandoned. Dispatch resumes at the first entry
	// after the group, with any in-flight error cleared.
	ErrSkipRoute = errors.New("skip route")
)
