package pipeline

import (
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Piqzaa/HTML-to-Twig/internal/convert"
)

// ResultCache keeps recent conversion results keyed by CacheKey. A nil
// *ResultCache is valid and caches nothing.
type ResultCache struct {
	cache *lru.Cache[string, convert.Result]
}

// NewResultCache returns a cache holding up to maxItems results, or nil
// when maxItems is not positive.
func NewResultCache(maxItems int) (*ResultCache, error) {
	if maxItems <= 0 {
		return nil, nil
	}
	c, err := lru.New[string, convert.Result](maxItems)
	if err != nil {
		return nil, err
	}
	return &ResultCache{cache: c}, nil
}

// CacheKey identifies a conversion by everything that affects its output:
// target, dialect options, the loader chosen by extension and the source.
func CacheKey(filename string, data []byte, req convert.Request) string {
	var sb strings.Builder
	sb.WriteString(string(req.Target))
	sb.WriteByte(0)
	sb.WriteString(req.Layout)
	sb.WriteByte(0)
	sb.WriteString(req.Theme)
	sb.WriteByte(0)
	sb.WriteString(strings.ToLower(filepath.Ext(filename)))
	sb.WriteByte(0)
	sb.Write(data)
	return ContentHashHex([]byte(sb.String()))
}

// Get returns a cached result relabelled for req. The cached report is
// shared, so only its header fields are copied.
func (c *ResultCache) Get(key string, req convert.Request) (convert.Result, bool) {
	if c == nil {
		return convert.Result{}, false
	}
	res, ok := c.cache.Get(key)
	if !ok {
		return convert.Result{}, false
	}
	if res.Report != nil {
		rep := *res.Report
		rep.Input = req.Input
		rep.Output = req.Output
		res.Report = &rep
	}
	return res, true
}

func (c *ResultCache) Put(key string, res convert.Result) {
	if c == nil {
		return
	}
	c.cache.Add(key, res)
}

func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.Len()
}
