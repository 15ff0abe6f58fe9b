package profile

import (
	"context"
	"sync"
)

// TestStore is an in-memory Store; it keeps the marshalled bytes so loads go through
// the same decoding path as the real backends.
type TestStore struct {
	mu    sync.Mutex
	data  []byte
	Err   error
	Saves int
}

func NewTestStore() *TestStore {
	return &TestStore{}
}

func (s *TestStore) Load(context.Context) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.data == nil {
		return nil, nil
	}
	return unmarshal(s.data)
}

func (s *TestStore) Save(_ context.Context, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	profileBytes, err := marshal(p)
	if err != nil {
		return err
	}
	s.data = profileBytes
	s.Saves++
	return nil
}

func (s *TestStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.data = nil
	return nil
}

// SetRaw stores raw bytes as is, e.g. to simulate a corrupted record.
func (s *TestStore) SetRaw(raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = raw
}
