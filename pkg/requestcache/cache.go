package requestcache

import (
	"context"
	"crypto/md5"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Response is the stored shape of a completed upstream call.
type Response struct {
	Status   int
	Header   http.Header
	Body     []byte
	CachedAt time.Time
}

// Clone returns an independent copy so one caller mutating the body can
// never corrupt what another caller received.
func (r *Response) Clone() *Response {
	body := make([]byte, len(r.Body))
	copy(body, r.Body)
	header := make(http.Header, len(r.Header))
	for k, v := range r.Header {
		header[k] = append([]string(nil), v...)
	}
	return &Response{Status: r.Status, Header: header, Body: body, CachedAt: r.CachedAt}
}

// IsJSON reports whether the response declared a JSON content type.
func (r *Response) IsJSON() bool {
	ct := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

type RequestFunc func(ctx context.Context) (*Response, error)

type flight struct {
	done chan struct{}
	resp *Response
	err  error
}

// Cache collapses bursts of identical upstream calls. A fresh entry within
// the TTL is served without a network call, and concurrent callers with the
// same key share one in-flight call. Only successful JSON responses are
// stored. This is not a general-purpose cache: the TTL is short on purpose
// so real data changes are never masked.
type Cache struct {
	entries *gocache.Cache

	mu       sync.Mutex
	inflight map[string]*flight
}

const DefaultTTL = 1 * time.Second

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries:  gocache.New(ttl, 10*ttl),
		inflight: make(map[string]*flight),
	}
}

// Key derives the cache key from the full request descriptor.
func Key(method, url string, body []byte) string {
	h := md5.New()
	fmt.Fprintf(h, "%s\n%s\n", method, url)
	h.Write(body)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Execute returns the cached response for key, joins an identical in-flight
// call, or runs fn. Every caller receives its own clone.
func (c *Cache) Execute(ctx context.Context, key string, fn RequestFunc) (*Response, error) {
	if x, found := c.entries.Get(key); found {
		return x.(*Response).Clone(), nil
	}

	c.mu.Lock()
	if f, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		select {
		case <-f.done:
			if f.err != nil {
				return nil, f.err
			}
			return f.resp.Clone(), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f := &flight{done: make(chan struct{})}
	c.inflight[key] = f
	c.mu.Unlock()

	resp, err := fn(ctx)
	if err == nil && resp.Status >= 200 && resp.Status < 300 && resp.IsJSON() {
		resp.CachedAt = time.Now()
		c.entries.Set(key, resp, gocache.DefaultExpiration)
	}

	f.resp = resp
	f.err = err
	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()
	close(f.done)

	if err != nil {
		return nil, err
	}
	return resp.Clone(), nil
}

// Flush drops every cached entry. Used by tests and by callers that know
// the data just changed.
func (c *Cache) Flush() {
	c.entries.Flush()
}
