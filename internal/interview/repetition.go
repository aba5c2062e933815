package interview

import (
	"strings"
	"sync"
)

// Normalize reduces question text to its repetition fingerprint: trimmed,
// lowercased, whitespace runs collapsed to single spaces, trailing sentence
// punctuation stripped. Fingerprint collisions across genuinely different
// questions are tolerated; the fingerprint only drives variety, never
// correctness.
func Normalize(text string) string {
	fields := strings.Fields(strings.ToLower(text))
	norm := strings.Join(fields, " ")
	return strings.TrimRight(norm, ".;:!")
}

// Registry is the process-wide set of question fingerprints across all
// sessions. It grows for the life of the process and is never pruned.
type Registry struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

func (r *Registry) Contains(fingerprint string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.seen[fingerprint]
	return ok
}

func (r *Registry) Add(fingerprint string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen[fingerprint] = struct{}{}
}
