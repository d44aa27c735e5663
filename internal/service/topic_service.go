package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"learning-log/internal/domain"
)

// TopicService implements domain.TopicService on top of a TopicRepository.
type TopicService struct {
	repo   domain.TopicRepository
	logger domain.Logger
	now    func() time.Time
}

func NewTopicService(repo domain.TopicRepository, logger domain.Logger) *TopicService {
	return &TopicService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *TopicService) ListTopics(ownerID string, token string) ([]*domain.Topic, error) {
	topics, err := s.repo.ListTopics(ownerID, token)
	if err != nil {
		return nil, err
	}
	if topics == nil {
		topics = []*domain.Topic{}
	}
	return topics, nil
}

// GetTopic returns the topic with its entries, newest first. Topics owned by
// someone else are reported as domain.ErrAccessDenied.
func (s *TopicService) GetTopic(ownerID string, topicID int64, token string) (*domain.TopicWithEntries, error) {
	topic, err := s.ownedTopic(ownerID, topicID, token)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.ListEntries(topic.ID, token)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*domain.Entry{}
	}

	return &domain.TopicWithEntries{Topic: topic, Entries: entries}, nil
}

func (s *TopicService) CreateTopic(ownerID string, text string, token string) (*domain.Topic, error) {
	text, err := validateText(text, domain.TopicTextMaxLength)
	if err != nil {
		return nil, err
	}

	topic := &domain.Topic{
		OwnerID:   ownerID,
		Text:      text,
		DateAdded: s.now(),
	}
	if err := s.repo.CreateTopic(topic, token); err != nil {
		return nil, err
	}

	s.logger.Info("Topic created", "topic_id", topic.ID, "owner_id", ownerID)
	return topic, nil
}

func (s *TopicService) CreateEntry(ownerID string, topicID int64, text string, token string) (*domain.Entry, error) {
	text, err := validateText(text, 0)
	if err != nil {
		return nil, err
	}

	topic, err := s.ownedTopic(ownerID, topicID, token)
	if err != nil {
		return nil, err
	}

	entry := &domain.Entry{
		TopicID:   topic.ID,
		Text:      text,
		DateAdded: s.now(),
	}
	if err := s.repo.CreateEntry(entry, token); err != nil {
		return nil, err
	}

	s.logger.Info("Entry created", "entry_id", entry.ID, "topic_id", topic.ID)
	return entry, nil
}

func (s *TopicService) UpdateEntry(ownerID string, entryID int64, text string, token string) (*domain.Entry, error) {
	text, err := validateText(text, 0)
	if err != nil {
		return nil, err
	}

	entry, err := s.repo.GetEntry(entryID, token)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedTopic(ownerID, entry.TopicID, token); err != nil {
		if errors.Is(err, domain.ErrTopicNotFound) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}

	entry.Text = text
	if err := s.repo.UpdateEntry(entry, token); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *TopicService) ownedTopic(ownerID string, topicID int64, token string) (*domain.Topic, error) {
	topic, err := s.repo.GetTopic(topicID, token)
	if err != nil {
		return nil, err
	}
	if topic.OwnerID != ownerID {
		return nil, fmt.Errorf("topic %d: %w", topicID, domain.ErrAccessDenied)
	}
	return topic, nil
}

// validateText trims text and checks it is present and, when maxLen > 0, not too long.
func validateText(text string, maxLen int) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &domain.ValidationError{Field: "text", Message: "is required"}
	}
	if maxLen > 0 && utf8.RuneCountInString(text) > maxLen {
		return "", &domain.ValidationError{Field: "text", Message: fmt.Sprintf("must be at most %d characters", maxLen)}
	}
	return text, nil
}
