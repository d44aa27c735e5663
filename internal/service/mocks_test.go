package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"learning-log/internal/domain"
)

type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.record("INFO: " + msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.record("ERROR: " + msg + " - " + err.Error())
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.record("DEBUG: " + msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.record("WARN: " + msg)
}

func (m *MockLogger) record(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, line)
}

// MockTopicRepository keeps topics and entries in memory.
type MockTopicRepository struct {
	topics  map[int64]*domain.Topic
	entries map[int64]*domain.Entry
	nextID  int64
	err     error
}

func NewMockTopicRepository() *MockTopicRepository {
	return &MockTopicRepository{
		topics:  make(map[int64]*domain.Topic),
		entries: make(map[int64]*domain.Entry),
	}
}

func (m *MockTopicRepository) ListTopics(ownerID string, token string) ([]*domain.Topic, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Topic
	for _, t := range m.topics {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateAdded.Before(out[j].DateAdded) })
	return out, nil
}

func (m *MockTopicRepository) GetTopic(id int64, token string) (*domain.Topic, error) {
	if t, ok := m.topics[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTopicNotFound
}

func (m *MockTopicRepository) CreateTopic(topic *domain.Topic, token string) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	topic.ID = m.nextID
	m.topics[topic.ID] = topic
	return nil
}

func (m *MockTopicRepository) ListEntries(topicID int64, token string) ([]*domain.Entry, error) {
	var out []*domain.Entry
	for _, e := range m.entries {
		if e.TopicID == topicID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateAdded.After(out[j].DateAdded) })
	return out, nil
}

func (m *MockTopicRepository) GetEntry(id int64, token string) (*domain.Entry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockTopicRepository) CreateEntry(entry *domain.Entry, token string) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	entry.ID = m.nextID
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockTopicRepository) UpdateEntry(entry *domain.Entry, token string) error {
	if _, ok := m.entries[entry.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	m.entries[entry.ID] = entry
	return nil
}

type MockStorageService struct {
	files map[string][]byte
	err   error
}

func NewMockStorageService() *MockStorageService {
	return &MockStorageService{
		files: make(map[string][]byte),
	}
}

func (m *MockStorageService) Upload(ctx context.Context, path string, file io.Reader) error {
	if m.err != nil {
		return m.err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	m.files[path] = data
	return nil
}

type mockValidator struct {
	err   error
	calls []string
}

func (m *mockValidator) Validate(path string) error {
	m.calls = append(m.calls, path)
	return m.err
}

type failingExtractor struct{}

func (failingExtractor) ExtractPages(path string) ([]domain.PageText, error) {
	return nil, errors.Join(domain.ErrUnreadableDocument, errors.New("corrupt xref"))
}

type errReader struct{}

func (errReader) Read(p []byte) (int, error) {
	return 0, errors.New("connection reset")
}
