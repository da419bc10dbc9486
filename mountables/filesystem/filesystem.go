package filesystem

import (
	"fmt"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/kildevaeld/rask/httpcontext"
	"github.com/kildevaeld/strong"
)

// New returns a mount handler serving files from fs. A request that
// names no file simply continues the walk, so the file system can sit
// ahead of application routes.
func New(fs http.FileSystem) httpcontext.HandlerFunc {
	return func(ctx *httpcontext.Context) error {
		if method := ctx.Request().Method; method != strong.GET && method != strong.HEAD {
			return nil
		}

		path := ctx.Request().URL.Path

		file, err := fs.Open(path)
		if err != nil {
			return nil
		}

		stat, err := file.Stat()
		if err != nil {
			file.Close()
			return err
		}

		if stat.IsDir() {
			file.Close()
			return nil
		}

		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = strong.MIMEOctetStream
		}

		ctx.SetBody(file)
		ctx.SetContentType(contentType)
		ctx.Header().Set(strong.HeaderContentLength, fmt.Sprintf("%d", stat.Size()))

		return nil
	}
}
