package knowledge

import (
	"Sceptre/backend/go/internal/models"
	"sort"
	"sync"
	"time"
)

// Base is a rolling evidence store for one session. Documents gathered
// during verification accumulate here so the chat responder can ground its
// answers; the store is bounded both by document age and by capacity.
type Base struct {
	mu          sync.Mutex
	docs        []models.Document
	maxDocs     int
	maxAge      time.Duration
	lastUpdated time.Time
	now         func() time.Time
}

// NewBase creates an empty knowledge base with the given bounds.
func NewBase(maxDocs int, maxAge time.Duration) *Base {
	return &Base{
		maxDocs: maxDocs,
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// AddDocuments merges new evidence into the store. Documents older than the
// age bound are evicted first; the merged set is then ordered by relevance
// (createdAt breaks ties) and truncated to capacity, keeping the best
// evidence rather than the newest.
func (b *Base) AddDocuments(docs []models.Document) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	cutoff := now.Add(-b.maxAge)

	kept := b.docs[:0]
	for _, doc := range b.docs {
		if doc.CreatedAt.After(cutoff) {
			kept = append(kept, doc)
		}
	}
	b.docs = append(kept, docs...)

	sort.SliceStable(b.docs, func(i, j int) bool {
		if b.docs[i].RelevanceScore != b.docs[j].RelevanceScore {
			return b.docs[i].RelevanceScore > b.docs[j].RelevanceScore
		}
		return b.docs[i].CreatedAt.After(b.docs[j].CreatedAt)
	})

	if len(b.docs) > b.maxDocs {
		b.docs = b.docs[:b.maxDocs]
	}

	b.lastUpdated = now
}

// Documents returns a snapshot of the stored evidence, best first.
func (b *Base) Documents() []models.Document {
	b.mu.Lock()
	defer b.mu.Unlock()

	snapshot := make([]models.Document, len(b.docs))
	copy(snapshot, b.docs)
	return snapshot
}

// IsEmpty reports whether the store holds no documents.
func (b *Base) IsEmpty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.docs) == 0
}

// LastUpdated returns the time of the most recent AddDocuments call.
func (b *Base) LastUpdated() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastUpdated
}

// Clear drops every stored document.
func (b *Base) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.docs = nil
	b.lastUpdated = b.now()
}
