package dexrepo

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/mangrove-one/MangroveMarkets/domain"
	"github.com/mangrove-one/MangroveMarkets/domain/mvc"
)

var _ mvc.QuoteRepository = &quoteRepo{}

type quoteRepo struct {
	quotes *expirable.LRU[string, domain.Quote]
}

// New creates a new in-memory repository of issued quotes.
// At most size quotes are remembered; the least recently used are evicted first.
// Quotes are forgotten ttl after they were stored, or when their own expiry passes,
// whichever comes first. A zero ttl only honors the quote expiry.
func New(size int, ttl time.Duration) mvc.QuoteRepository {
	return &quoteRepo{
		quotes: expirable.NewLRU[string, domain.Quote](size, nil, ttl),
	}
}

// Store implements mvc.QuoteRepository.
func (r *quoteRepo) Store(quote domain.Quote) {
	r.quotes.Add(quote.QuoteID, quote)
}

// Get implements mvc.QuoteRepository.
func (r *quoteRepo) Get(quoteID string) (domain.Quote, bool) {
	quote, ok := r.quotes.Get(quoteID)
	if !ok {
		return domain.Quote{}, false
	}

	if quote.IsExpired(time.Now()) {
		r.quotes.Remove(quoteID)
		return domain.Quote{}, false
	}

	return quote, true
}

// Len implements mvc.QuoteRepository.
func (r *quoteRepo) Len() int {
	return r.quotes.Len()
}
