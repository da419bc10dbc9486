package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/kildevaeld/rask/httpcontext"
	"github.com/kildevaeld/strong"
)

type CacheControl struct {
	MaxAge  int
	Private bool
	Debug   bool
}

// NewCacheControl sets Cache-Control and Expires headers on
// successful responses.
func NewCacheControl(options *CacheControl) httpcontext.HandlerFunc {
	if options == nil {
		options = &CacheControl{
			MaxAge:  7 * 24 * 60 * 60,
			Private: false,
			Debug:   false,
		}
	}
	maxAge := options.MaxAge
	if options.Debug {
		maxAge = 1
	}

	scope := "public"
	if options.Private {
		scope = "private"
	}

	return func(ctx *httpcontext.Context) error {
		ctx.OnComplete(func() {
			if !(strong.IsSuccess(ctx.StatusCode()) || ctx.StatusCode() == 0) {
				return
			}

			cacheCtrl := ctx.Request().Header.Get(strong.HeaderCacheControl)
			if strings.ToLower(cacheCtrl) == "no-cache" {
				return
			}

			ctx.Header().Set(strong.HeaderCacheControl, fmt.Sprintf(scope+", max-age=%d", maxAge))

			now := time.Now().Add(time.Duration(maxAge) * time.Second)

			ctx.Header().Set("expires", now.Format(time.RFC1123))
		})

		return nil
	}
}
