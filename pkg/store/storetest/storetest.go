// Package storetest provides an in-memory Store implementation for tests.
package storetest

import (
	"context"
	"sync"

	"github.com/iot-data-space/dataspace/pkg/store"
)

// Store is a fake entity store. It records every call and answers with a
// canned response, a canned error, or a custom query function. The zero
// value answers every query with an empty list.
type Store struct {
	mu        sync.Mutex
	queryFunc func(ctx context.Context, params store.Params) (any, error)
	response  any
	err       error
	createErr error
	calls     []store.Params
	created   []any
}

var (
	_ store.Store   = (*Store)(nil)
	_ store.Creator = (*Store)(nil)
)

// New creates an empty fake store.
func New() *Store {
	return &Store{}
}

// WithResponse sets the value returned by every QueryEntities call.
func (s *Store) WithResponse(response any) *Store {
	s.response = response
	return s
}

// WithError makes every QueryEntities call fail with err.
func (s *Store) WithError(err error) *Store {
	s.err = err
	return s
}

// WithQueryFunc installs a custom handler for QueryEntities. It takes
// precedence over WithResponse and WithError.
func (s *Store) WithQueryFunc(f func(ctx context.Context, params store.Params) (any, error)) *Store {
	s.queryFunc = f
	return s
}

// WithCreateError makes every CreateEntity call fail with err.
func (s *Store) WithCreateError(err error) *Store {
	s.createErr = err
	return s
}

// QueryEntities records the call and answers with the configured result.
func (s *Store) QueryEntities(ctx context.Context, params store.Params) (any, error) {
	s.mu.Lock()
	s.calls = append(s.calls, params)
	s.mu.Unlock()

	if s.queryFunc != nil {
		return s.queryFunc(ctx, params)
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.response != nil {
		return s.response, nil
	}
	return []any{}, nil
}

// CreateEntity records the entity and answers with the configured error.
func (s *Store) CreateEntity(ctx context.Context, entity any) error {
	s.mu.Lock()
	s.created = append(s.created, entity)
	s.mu.Unlock()

	return s.createErr
}

// Calls returns a copy of the recorded query parameters, in call order.
func (s *Store) Calls() []store.Params {
	s.mu.Lock()
	defer s.mu.Unlock()

	calls := make([]store.Params, len(s.calls))
	copy(calls, s.calls)
	return calls
}

// CallCount returns the number of QueryEntities calls made so far.
func (s *Store) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// Created returns a copy of the entities passed to CreateEntity.
func (s *Store) Created() []any {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := make([]any, len(s.created))
	copy(created, s.created)
	return created
}
