package presenter

import (
	"net/url"
	"strconv"
)

// PageView is the paginated list envelope.
type PageView[V any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []V     `json:"results"`
}

// PageLinks builds absolute next/previous links from the request URL,
// keeping its other query parameters. Page 1 drops the page parameter.
func (m Media) PageLinks(requestURL *url.URL, number int, hasNext, hasPrevious bool) (next, previous *string) {
	if hasNext {
		next = m.pageLink(requestURL, number+1)
	}
	if hasPrevious {
		previous = m.pageLink(requestURL, number-1)
	}
	return next, previous
}

func (m Media) pageLink(requestURL *url.URL, page int) *string {
	q := requestURL.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	link := m.Origin + requestURL.Path
	if encoded := q.Encode(); encoded != "" {
		link += "?" + encoded
	}
	return &link
}

// Render maps items to views.
func Render[T, V any](items []T, view func(*T) V) []V {
	out := make([]V, len(items))
	for i := range items {
		out[i] = view(&items[i])
	}
	return out
}
