package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/kildevaeld/rask/httpcontext"
	"github.com/kildevaeld/strong"
)

type Etag struct {
	Weak bool
}

// NewEtag tags buffered-body responses with an entity tag and answers
// If-None-Match revalidations with 304. Streaming bodies pass through
// untagged.
func NewEtag(options *Etag) httpcontext.HandlerFunc {
	if options == nil {
		options = &Etag{
			Weak: false,
		}
	}

	return func(ctx *httpcontext.Context) error {
		ctx.OnComplete(func() {
			bs := ctx.BufferedBody()
			if bs == nil {
				return
			}
			if !(strong.IsSuccess(ctx.StatusCode()) || ctx.StatusCode() == 0) {
				return
			}

			sum := md5.Sum(bs)
			tag := fmt.Sprintf(`"%d-%s"`, len(bs), hex.EncodeToString(sum[:]))
			if options.Weak {
				tag = "W/" + tag
			}

			ctx.Header().Set("Etag", tag)

			if ctx.Request().Header.Get("If-None-Match") == tag {
				ctx.Header().Del(strong.HeaderContentLength)
				ctx.SetStatusCode(strong.StatusNotModified)
				ctx.SetBody(nil)
			}
		})

		return nil
	}
}
