// Package crawler implements the breadth-first single-site crawl engine.
package crawler

import (
	"net/url"
	"sync"
)

// URLQueue is the crawl frontier: a FIFO queue of pending URLs with a
// visited set for deduplication. A URL is enqueued at most once, even on
// cyclic link graphs.
type URLQueue struct {
	mu      sync.Mutex
	queue   []string
	visited map[string]bool
}

// NewURLQueue creates a new URL queue.
func NewURLQueue() *URLQueue {
	return &URLQueue{
		queue:   make([]string, 0),
		visited: make(map[string]bool),
	}
}

// Add normalizes rawURL and appends it to the queue if it has not been
// seen before. Returns false for invalid, already visited or already
// queued URLs.
func (q *URLQueue) Add(rawURL string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	normalized := NormalizeURL(rawURL)
	if normalized == "" {
		return false
	}

	if q.visited[normalized] {
		return false
	}

	q.visited[normalized] = true
	q.queue = append(q.queue, normalized)
	return true
}

// Pop removes and returns the next URL from the queue.
func (q *URLQueue) Pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.queue) == 0 {
		return "", false
	}

	next := q.queue[0]
	q.queue = q.queue[1:]
	return next, true
}

// Len returns the number of pending URLs.
func (q *URLQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queue)
}

// IsVisited checks if a URL has been visited or queued.
func (q *URLQueue) IsVisited(rawURL string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.visited[NormalizeURL(rawURL)]
}

// NormalizeURL normalizes a URL for deduplication: the fragment is
// dropped, an empty path becomes "/", and a trailing slash is collapsed
// so that /about and /about/ are the same node. Returns "" for
// unparseable input.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	parsed.Fragment = ""

	if parsed.Path == "" {
		parsed.Path = "/"
	}
	if len(parsed.Path) > 1 && parsed.Path[len(parsed.Path)-1] == '/' {
		parsed.Path = parsed.Path[:len(parsed.Path)-1]
	}

	return parsed.String()
}

// IsSameHost checks if two URLs share a host.
func IsSameHost(url1, url2 string) bool {
	parsed1, err := url.Parse(url1)
	if err != nil {
		return false
	}
	parsed2, err := url.Parse(url2)
	if err != nil {
		return false
	}
	return parsed1.Host == parsed2.Host
}
