package annotation

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of reviews a Parser remembers
const DefaultCacheSize = 512

// Parser memoizes Parse results in a least recently used cache.
// It is safe for concurrent use.
type Parser struct {
	cache  *lru.Cache[string, []TextSpan]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewParser creates a Parser holding at most size entries.
// A non-positive size uses DefaultCacheSize.
func NewParser(size int) *Parser {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// lru.New only fails for a non-positive size
	cache, _ := lru.New[string, []TextSpan](size)
	return &Parser{cache: cache}
}

// Parse returns the spans of review, computing them once while the review
// stays in the cache. The returned slice is a copy and may be modified by the caller.
func (p *Parser) Parse(review string) []TextSpan {
	if spans, ok := p.cache.Get(review); ok {
		p.hits.Add(1)
		return clone(spans)
	}

	p.misses.Add(1)
	spans := Parse(review)
	p.cache.Add(review, spans)

	return clone(spans)
}

// ParseAll parses every review through the cache
func (p *Parser) ParseAll(reviews []string) [][]TextSpan {
	out := make([][]TextSpan, len(reviews))
	for i, r := range reviews {
		out[i] = p.Parse(r)
	}
	return out
}

// Len returns the number of cached reviews
func (p *Parser) Len() int {
	return p.cache.Len()
}

// Stats returns the cache hit and miss counters
func (p *Parser) Stats() (hits, misses int) {
	return int(p.hits.Load()), int(p.misses.Load())
}

func clone(spans []TextSpan) []TextSpan {
	out := make([]TextSpan, len(spans))
	copy(out, spans)
	return out
}
