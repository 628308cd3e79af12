package session

import (
	"context"

	"github.com/ariebrainware/biosecure-portal/util"
	"github.com/google/uuid"
)

// Manager issues session tokens and moves state between requests and the store.
type Manager struct {
	store  Store
	secret func() []byte
}

func NewManager(store Store) *Manager {
	return &Manager{store: store, secret: util.GetJWTSecretByte}
}

// Start creates and saves an anonymous session and returns its token.
func (m *Manager) Start(ctx context.Context) (*State, string, error) {
	s := NewState(uuid.NewString())
	token, err := IssueToken(s.ID, m.secret())
	if err != nil {
		return nil, "", err
	}
	if err := m.Save(ctx, s); err != nil {
		return nil, "", err
	}
	return s, token, nil
}

// Resolve returns the state named by token.
func (m *Manager) Resolve(ctx context.Context, token string) (*State, error) {
	id, err := ParseToken(token, m.secret())
	if err != nil {
		return nil, err
	}
	return m.store.Load(ctx, id)
}

// Save writes s when it changed since it was loaded.
func (m *Manager) Save(ctx context.Context, s *State) error {
	if s == nil || !s.dirty {
		return nil
	}
	if err := m.store.Save(ctx, s); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

func (m *Manager) End(ctx context.Context, s *State) error {
	return m.store.Delete(ctx, s.ID)
}
