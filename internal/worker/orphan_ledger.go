package worker

import (
	"context"
	"sync"

	"github.com/DanielPopoola/payments-gateway/internal/application"
)

// LedgerEntry is an orphaned authorization waiting to be recorded.
type LedgerEntry struct {
	application.OrphanedAuthorization
	Attempts int
}

// OrphanLedger holds orphaned authorizations in arrival order until the
// reconciler manages to record them.
type OrphanLedger struct {
	mu      sync.Mutex
	order   []string
	entries map[string]*LedgerEntry
}

func NewOrphanLedger() *OrphanLedger {
	return &OrphanLedger{entries: make(map[string]*LedgerEntry)}
}

func (l *OrphanLedger) ReportOrphanedAuthorization(_ context.Context, orphan application.OrphanedAuthorization) {
	if orphan.Payment == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	id := orphan.Payment.ID()
	if _, exists := l.entries[id]; exists {
		return
	}
	orphan.Payment = orphan.Payment.Clone()
	l.entries[id] = &LedgerEntry{OrphanedAuthorization: orphan}
	l.order = append(l.order, id)
}

// Pending returns up to limit entries, oldest first. A limit of zero or less returns all.
func (l *OrphanLedger) Pending(limit int) []LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.order)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]LedgerEntry, 0, n)
	for _, id := range l.order[:n] {
		entry := *l.entries[id]
		entry.Payment = entry.Payment.Clone()
		out = append(out, entry)
	}
	return out
}

func (l *OrphanLedger) Remove(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.entries[id]; !exists {
		return
	}
	delete(l.entries, id)
	for i, existing := range l.order {
		if existing == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

func (l *OrphanLedger) recordAttempt(id string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[id]
	if !ok {
		return 0
	}
	entry.Attempts++
	return entry.Attempts
}

func (l *OrphanLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}
