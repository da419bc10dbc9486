package httpcontext

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/kildevaeld/rask/matcher"
	"github.com/kildevaeld/strong"
)

var (
	requestPool sync.Pool
	contextPool sync.Pool
)

func init() {
	requestPool = sync.Pool{
		New: func() interface{} {
			return &RequestBody{}
		},
	}

	contextPool = sync.Pool{
		New: func() interface{} {
			return &Context{res: &sentWriter{}}
		},
	}
}

type RequestBody struct {
	reader      io.ReadCloser
	contentType string
	done        bool
}

func (r *RequestBody) Read(bs []byte) (int, error) {
	if r.done {
		return 0, io.EOF
	}
	read, err := r.reader.Read(bs)
	if err == io.EOF {
		r.done = true
	}
	return read, err
}

func (r *RequestBody) Close() error {
	r.done = true
	return r.reader.Close()
}

func (r *RequestBody) ReadAll() ([]byte, error) {
	bs, err := ioutil.ReadAll(r.reader)
	r.done = true
	return bs, err
}

// Decode unmarshals the request body using the decoder registered for
// its content type.
func (r *RequestBody) Decode(v interface{}) error {
	if r.done {
		return io.EOF
	}

	bs, err := r.ReadAll()
	defer r.Close()
	if err != nil {
		return err
	}

	decoder := GetDecoder(r.contentType)
	if decoder == nil {
		return fmt.Errorf("cannot decode content type '%s'", r.contentType)
	}

	return decoder.Decode(bs, v)
}

func (r *RequestBody) reset() *RequestBody {
	r.done = false
	r.reader = nil
	return r
}

// Context is the per-request dispatch state. One instance lives for
// one request and is never shared across requests. The response side
// is buffered: handlers set a status and a body here, and Run writes
// them to the transport when the walk is over.
type Context struct {
	req     *http.Request
	reqBody *RequestBody
	params  matcher.Params
	query   map[string]string
	res     *sentWriter

	body      io.ReadCloser
	bodyBytes *bytes.Buffer
	status    int
	u         map[string]interface{}
	hooks     []func()
}

// Params returns the capture-group values of the most recent route
// match. Every successful match overwrites them.
func (c *Context) Params() matcher.Params {
	return c.params
}

func (c *Context) SetParams(params matcher.Params) {
	c.params = params
}

// Query returns the request's query-string mapping, parsed once per
// request. Keys are unique; the first value wins.
func (c *Context) Query() map[string]string {
	if c.query == nil {
		values := c.req.URL.Query()
		c.query = make(map[string]string, len(values))
		for k, v := range values {
			if len(v) > 0 {
				c.query[k] = v[0]
			}
		}
	}
	return c.query
}

func (c *Context) Request() *http.Request {
	return c.req
}

// Response returns the raw transport writer. Writing to it directly
// bypasses the buffered response model; prefer the body helpers.
func (c *Context) Response() http.ResponseWriter {
	return c.res
}

// HeadersSent reports whether headers already went out on the wire.
func (c *Context) HeadersSent() bool {
	return c.res.sent
}

// Written reports whether the context carries a response: a status, a
// body, or headers already on the wire.
func (c *Context) Written() bool {
	return c.status > 0 || c.body != nil || c.res.sent
}

// Response
func (c *Context) SetContentType(contentType string) *Context {
	c.res.Header().Set(strong.HeaderContentType, contentType)
	return c
}

func (c *Context) SetBody(v io.ReadCloser) *Context {
	if c.body != nil {
		c.body.Close()
	}
	c.body = v
	c.bodyBytes = nil
	return c
}

func (c *Context) Body() io.ReadCloser {
	return c.body
}

// BufferedBody returns the body bytes when the body was produced by
// one of the byte helpers, nil otherwise.
func (c *Context) BufferedBody() []byte {
	if c.bodyBytes == nil {
		return nil
	}
	return c.bodyBytes.Bytes()
}

func (c *Context) SetStatusCode(status int) *Context {
	c.status = status
	return c
}

func (c *Context) StatusCode() int {
	return c.status
}

func (c *Context) RequestBody() *RequestBody {
	if c.reqBody == nil {
		c.reqBody = requestPool.Get().(*RequestBody)
		c.reqBody.reader = c.req.Body
		c.reqBody.contentType = c.req.Header.Get(strong.HeaderContentType)
	}
	return c.reqBody
}

func (c *Context) Text(str string) error {
	c.res.Header().Set(strong.HeaderContentType, strong.MIMETextPlain)
	return c.bytes([]byte(str))
}

func (c *Context) JSON(v interface{}) error {
	c.res.Header().Set(strong.HeaderContentType, strong.MIMEApplicationJSONCharsetUTF8)

	bs, err := (&JsonEncoding{}).Encode(v)
	if err != nil {
		return err
	}

	return c.bytes(bs)
}

func (c *Context) HTML(str string) error {
	c.res.Header().Set(strong.HeaderContentType, strong.MIMETextHTMLCharsetUTF8)
	return c.bytes([]byte(str))
}

func (c *Context) Bytes(bs []byte) error {
	c.res.Header().Set(strong.HeaderContentType, strong.MIMEOctetStream)
	return c.bytes(bs)
}

// Serialize encodes v with the encoder matching the request's Accept
// header, falling back to json.
func (c *Context) Serialize(v interface{}) error {
	accept := c.req.Header.Get("Accept")

	encoder := GetEncoder(accept)
	contentType := accept
	if encoder == nil {
		encoder = &JsonEncoding{}
		contentType = strong.MIMEApplicationJSONCharsetUTF8
	}

	bs, err := encoder.Encode(v)
	if err != nil {
		return err
	}

	c.res.Header().Set(strong.HeaderContentType, contentType)
	return c.bytes(bs)
}

func (c *Context) bytes(bs []byte) error {
	if c.body != nil {
		c.body.Close()
	}
	c.Header().Set(strong.HeaderContentLength, fmt.Sprintf("%d", len(bs)))
	c.bodyBytes = bytes.NewBuffer(bs)
	c.body = ioutil.NopCloser(c.bodyBytes)
	return nil
}

// ResponseWriter
func (c *Context) Write(bs []byte) (int, error) {
	if c.body == nil {
		c.bodyBytes = bytes.NewBuffer(nil)
		c.body = ioutil.NopCloser(c.bodyBytes)
	}

	if writer, ok := c.body.(io.Writer); ok {
		return writer.Write(bs)
	}
	if c.bodyBytes != nil {
		return c.bodyBytes.Write(bs)
	}

	return 0, fmt.Errorf("body not a writer")
}

func (c *Context) WriteHeader(statusCode int) {
	c.status = statusCode
}

func (c *Context) Error(status int, msg ...interface{}) error {
	return strong.NewHTTPError(status, msg...)
}

func (c *Context) Redirect(status int, path string) error {
	return &RedirectError{status, path}
}

func (c *Context) SetUserValue(k string, v interface{}) *Context {
	if c.u == nil {
		c.u = make(map[string]interface{})
	}
	c.u[k] = v
	return c
}

func (c *Context) UserValue(k string) interface{} {
	if c.u == nil {
		return nil
	}
	return c.u[k]
}

func (c *Context) Header() http.Header {
	return c.res.Header()
}

// OnComplete registers fn to run when the walk is over, before the
// buffered response is written. Hooks run in registration order and
// may still adjust headers and status; this is how middleware
// observes the final outcome of a request.
func (c *Context) OnComplete(fn func()) {
	c.hooks = append(c.hooks, fn)
}

func (c *Context) finish() {
	for _, fn := range c.hooks {
		fn()
	}
}

// Websocket upgrades the connection. The handler owns the raw
// connection afterwards and must signal ErrHandled.
func (c *Context) Websocket(upgrader *websocket.Upgrader) (*websocket.Conn, error) {
	if upgrader == nil {
		return websocket.Upgrade(c.res, c.req, c.Header(), 1024, 1024)
	}
	return upgrader.Upgrade(c.res, c.req, c.Header())
}

type Link struct {
	Last    int
	First   int
	Current int
	Path    string
}

func writelink(rel string, url *url.URL) []byte {
	buf := bytes.NewBuffer(nil)
	buf.WriteString("<")
	buf.WriteString(url.String())
	buf.WriteString(`>; rel="` + rel + `"`)

	return buf.Bytes()
}

// SetLinkHeader writes pagination links for the current url.
func (c *Context) SetLinkHeader(l Link) *Context {

	url, err := url.Parse(c.Request().URL.String())
	if err != nil {
		panic(err)
	}

	if l.Path != "" {
		url.Path = l.Path
	}

	var links [][]byte
	var page = "page"
	args := c.Request().URL.Query()

	args.Set(page, fmt.Sprintf("%d", l.First))
	url.RawQuery = args.Encode()
	links = append(links, writelink("first", url))

	args.Set(page, fmt.Sprintf("%d", l.Current))
	url.RawQuery = args.Encode()
	links = append(links, writelink("current", url))

	if l.Last > l.Current {
		args.Set(page, fmt.Sprintf("%d", l.Current+1))
		url.RawQuery = args.Encode()
		links = append(links, writelink("next", url))
	}
	if l.Current > l.First {
		args.Set(page, fmt.Sprintf("%d", l.Current-1))
		url.RawQuery = args.Encode()
		links = append(links, writelink("prev", url))
	}
	args.Set(page, fmt.Sprintf("%d", l.Last))
	url.RawQuery = args.Encode()
	links = append(links, writelink("last", url))

	c.Header().Set(strong.HeaderLink, string(bytes.Join(links, []byte(", "))))
	return c
}

func (c *Context) reset() *Context {
	c.req = nil
	if c.reqBody != nil {
		c.reqBody.Close()
		requestPool.Put(c.reqBody.reset())
	}
	c.reqBody = nil
	c.res.reset(nil)
	c.params = nil
	c.query = nil
	c.u = nil
	c.status = 0
	c.hooks = nil

	if c.body != nil {
		c.body.Close()
	}
	c.body = nil
	c.bodyBytes = nil
	return c
}

func Acquire(w http.ResponseWriter, r *http.Request) *Context {
	ctx := contextPool.Get().(*Context)
	ctx.res.reset(w)
	ctx.req = r
	return ctx
}

func Release(ctx *Context) {
	contextPool.Put(ctx.reset())
}
