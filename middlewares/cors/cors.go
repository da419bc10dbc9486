package cors

import (
	"strings"

	"github.com/kildevaeld/rask/httpcontext"
	"github.com/kildevaeld/strong"
)

// Config defines the config for the CORS handler.
type Config struct {
	// AllowOrigins is the set of origins granted access. Required:
	// an origin outside the set gets no allow-origin header.
	AllowOrigins []string

	// AllowMethods is reflected on every response. Optional, default
	// is GET only.
	AllowMethods []string
}

// New returns a cross-origin handler. It only sets headers and always
// continues the walk; it never terminates a request and never
// declares an error.
func New(config Config) httpcontext.HandlerFunc {
	if len(config.AllowMethods) == 0 {
		config.AllowMethods = []string{strong.GET}
	}

	allowMethods := strings.Join(config.AllowMethods, ",")
	origins := make(map[string]bool, len(config.AllowOrigins))
	for _, origin := range config.AllowOrigins {
		origins[origin] = true
	}

	return func(c *httpcontext.Context) error {
		if requested := c.Request().Header.Get(strong.HeaderAccessControlRequestHeaders); requested != "" {
			c.Header().Set(strong.HeaderAccessControlAllowHeaders, requested)
		}

		c.Header().Set(strong.HeaderAccessControlAllowMethods, allowMethods)

		if origin := c.Request().Header.Get(strong.HeaderOrigin); origins[origin] {
			c.Header().Set(strong.HeaderAccessControlAllowOrigin, origin)
		}

		return nil
	}
}
