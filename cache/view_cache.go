// Package cache keeps rendered GET responses until a mutation marks their
// view stale.
package cache

import (
	"bytes"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

type entry struct {
	status      int
	contentType string
	body        []byte
}

// ViewCache stores successful GET responses keyed by request URI and grouped
// by path, so one Revalidate drops every query-string variant of a view.
type ViewCache struct {
	mu    sync.RWMutex
	views map[string]map[string]entry // path -> request URI -> response
	gen   uint64                      // bumped by every revalidation
}

func NewViewCache() *ViewCache {
	return &ViewCache{views: make(map[string]map[string]entry)}
}

// Revalidate marks the view at path and every view below it stale.
func (c *ViewCache) Revalidate(path string) {
	prefix := strings.TrimSuffix(path, "/") + "/"
	c.mu.Lock()
	c.gen++
	n := 0
	for p, v := range c.views {
		if p == path || strings.HasPrefix(p, prefix) {
			n += len(v)
			delete(c.views, p)
		}
	}
	c.mu.Unlock()
	if n > 0 {
		log.Printf("cache: revalidated %s (%d entries)", path, n)
	}
}

// RevalidateAll drops every cached view.
func (c *ViewCache) RevalidateAll() {
	c.mu.Lock()
	c.gen++
	c.views = make(map[string]map[string]entry)
	c.mu.Unlock()
}

// Len returns the number of cached responses.
func (c *ViewCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, v := range c.views {
		n += len(v)
	}
	return n
}

func (c *ViewCache) get(path, uri string) (entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.views[path][uri]
	return e, ok
}

func (c *ViewCache) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// put stores e only if no revalidation ran since gen was read.
func (c *ViewCache) put(path, uri string, gen uint64, e entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return
	}
	if c.views[path] == nil {
		c.views[path] = make(map[string]entry)
	}
	c.views[path][uri] = e
}

type recorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (r *recorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *recorder) WriteString(s string) (int, error) {
	r.buf.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

// Middleware serves GET requests from the cache and stores 200 responses.
func (c *ViewCache) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet {
			ctx.Next()
			return
		}

		path := ctx.Request.URL.Path
		uri := ctx.Request.URL.RequestURI()
		if e, ok := c.get(path, uri); ok {
			ctx.Header("X-Cache", "HIT")
			ctx.Data(e.status, e.contentType, e.body)
			ctx.Abort()
			return
		}

		gen := c.generation()
		rec := &recorder{ResponseWriter: ctx.Writer}
		ctx.Writer = rec
		ctx.Header("X-Cache", "MISS")
		ctx.Next()

		if rec.Status() == http.StatusOK {
			c.put(path, uri, gen, entry{
				status:      http.StatusOK,
				contentType: rec.Header().Get("Content-Type"),
				body:        bytes.Clone(rec.buf.Bytes()),
			})
		}
	}
}
