package endpoint_test

import (
	"context"
	"sync"

	"github.com/ariebrainware/biosecure-portal/model"
	"github.com/ariebrainware/biosecure-portal/store"
)

// recordingStore persists activity through the wrapped store and remembers event types.
type recordingStore struct {
	store.Store
	mu    sync.Mutex
	types []string
}

func (r *recordingStore) RecordActivity(ctx context.Context, entry *model.ActivityLog) error {
	r.mu.Lock()
	r.types = append(r.types, entry.EventType)
	r.mu.Unlock()
	return r.Store.RecordActivity(ctx, entry)
}

func (r *recordingStore) events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.types...)
}
