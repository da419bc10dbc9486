package httpcontext

import (
	"bufio"
	"bytes"
	"io/ioutil"
	"net"
	"net/http"
)

// sentWriter wraps the transport's ResponseWriter and remembers
// whether headers went out on the wire. Once they have, the responder
// must not attempt a new status line.
type sentWriter struct {
	http.ResponseWriter
	sent bool
}

func (w *sentWriter) WriteHeader(status int) {
	w.sent = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *sentWriter) Write(bs []byte) (int, error) {
	w.sent = true
	return w.ResponseWriter.Write(bs)
}

func (w *sentWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	w.sent = true
	return hijacker.Hijack()
}

func (w *sentWriter) reset(res http.ResponseWriter) *sentWriter {
	w.ResponseWriter = res
	w.sent = false
	return w
}

// writerWrapper adapts a plain http.HandlerFunc to the buffered
// response model: writes land in the context body instead of on the
// wire, so later entries and the responder still get a say.
type writerWrapper struct {
	ctx    *Context
	writer *bytes.Buffer
}

func (w *writerWrapper) Write(bs []byte) (int, error) {
	return w.writer.Write(bs)
}

func (w *writerWrapper) Header() http.Header {
	return w.ctx.Header()
}

func (w *writerWrapper) WriteHeader(status int) {
	w.ctx.SetStatusCode(status)
}

func (w *writerWrapper) Close() error {
	if w.writer.Len() > 0 {
		w.ctx.SetBody(ioutil.NopCloser(w.writer))
	}
	return nil
}

func newWriterWrapper(ctx *Context) *writerWrapper {
	return &writerWrapper{
		ctx, bytes.NewBuffer(nil),
	}
}
