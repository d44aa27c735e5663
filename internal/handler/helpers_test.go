package handler

import (
	"context"
	"net/http"
	"sync"

	"learning-log/internal/domain"
)

// Mock logger used by handler package tests.
type MockHandlerLogger struct{}

func NewMockHandlerLogger() domain.Logger {
	return &MockHandlerLogger{}
}

func (l *MockHandlerLogger) Info(msg string, fields ...interface{})             {}
func (l *MockHandlerLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *MockHandlerLogger) Debug(msg string, fields ...interface{})            {}
func (l *MockHandlerLogger) Warn(msg string, fields ...interface{})             {}

func createContextWithUser(r *http.Request, user *domain.SupabaseUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userContextKey, user))
}

func createContextWithToken(r *http.Request, token string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), tokenContextKey, token))
}

func authenticated(r *http.Request, userID string) *http.Request {
	return createContextWithToken(createContextWithUser(r, &domain.SupabaseUser{ID: userID}), "token")
}

// memorySessionStore is an in-memory domain.SessionStore.
type memorySessionStore struct {
	mu     sync.Mutex
	values map[string]string
	setErr error
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{values: make(map[string]string)}
}

func (s *memorySessionStore) Get(sessionID, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[sessionID+"/"+key]
	return v, ok, nil
}

func (s *memorySessionStore) Set(sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.values[sessionID+"/"+key] = value
	return nil
}

func (s *memorySessionStore) Delete(sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, sessionID+"/"+key)
	return nil
}

func (s *memorySessionStore) Close() error { return nil }
