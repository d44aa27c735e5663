package repository

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"learning-log/internal/domain"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

const (
	topicsTable  = "topics"
	entriesTable = "entries"
)

// TopicRepository stores topics and entries in Supabase tables.
type TopicRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewTopicRepository creates a new Supabase topic repository
func NewTopicRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.TopicRepository {
	return &TopicRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

func (r *TopicRepository) client(token string) (*supabase.Client, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}
	return client, nil
}

// ListTopics returns the owner's topics, oldest first.
func (r *TopicRepository) ListTopics(ownerID string, token string) ([]*domain.Topic, error) {
	client, err := r.client(token)
	if err != nil {
		return nil, err
	}

	data, _, err := client.From(topicsTable).
		Select("*", "", false).
		Eq("owner_id", ownerID).
		Order("date_added", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}

	topics, err := decodeTopics(data)
	if err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *TopicRepository) GetTopic(id int64, token string) (*domain.Topic, error) {
	client, err := r.client(token)
	if err != nil {
		return nil, err
	}

	data, _, err := client.From(topicsTable).
		Select("*", "", false).
		Eq("id", strconv.FormatInt(id, 10)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}

	topics, err := decodeTopics(data)
	if err != nil {
		return nil, err
	}
	if len(topics) == 0 {
		return nil, domain.ErrTopicNotFound
	}
	return topics[0], nil
}

func (r *TopicRepository) CreateTopic(topic *domain.Topic, token string) error {
	client, err := r.client(token)
	if err != nil {
		return err
	}

	row := map[string]interface{}{
		"owner_id":   topic.OwnerID,
		"text":       topic.Text,
		"date_added": topic.DateAdded.Format(time.RFC3339Nano),
	}
	data, _, err := client.From(topicsTable).Insert(row, false, "", "representation", "").Execute()
	if err != nil {
		r.logger.Error("Failed to insert topic in Supabase", err, "owner_id", topic.OwnerID)
		return fmt.Errorf("failed to create topic: %w", err)
	}

	created, err := decodeTopics(data)
	if err != nil {
		return err
	}
	if len(created) == 0 {
		return fmt.Errorf("failed to create topic: empty response")
	}
	topic.ID = created[0].ID
	topic.DateAdded = created[0].DateAdded
	return nil
}

// ListEntries returns a topic's entries, newest first.
func (r *TopicRepository) ListEntries(topicID int64, token string) ([]*domain.Entry, error) {
	client, err := r.client(token)
	if err != nil {
		return nil, err
	}

	data, _, err := client.From(entriesTable).
		Select("*", "", false).
		Eq("topic_id", strconv.FormatInt(topicID, 10)).
		Order("date_added", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return decodeEntries(data)
}

func (r *TopicRepository) GetEntry(id int64, token string) (*domain.Entry, error) {
	client, err := r.client(token)
	if err != nil {
		return nil, err
	}

	data, _, err := client.From(entriesTable).
		Select("*", "", false).
		Eq("id", strconv.FormatInt(id, 10)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	entries, err := decodeEntries(data)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrEntryNotFound
	}
	return entries[0], nil
}

func (r *TopicRepository) CreateEntry(entry *domain.Entry, token string) error {
	client, err := r.client(token)
	if err != nil {
		return err
	}

	row := map[string]interface{}{
		"topic_id":   entry.TopicID,
		"text":       entry.Text,
		"date_added": entry.DateAdded.Format(time.RFC3339Nano),
	}
	data, _, err := client.From(entriesTable).Insert(row, false, "", "representation", "").Execute()
	if err != nil {
		r.logger.Error("Failed to insert entry in Supabase", err, "topic_id", entry.TopicID)
		return fmt.Errorf("failed to create entry: %w", err)
	}

	created, err := decodeEntries(data)
	if err != nil {
		return err
	}
	if len(created) == 0 {
		return fmt.Errorf("failed to create entry: empty response")
	}
	entry.ID = created[0].ID
	entry.DateAdded = created[0].DateAdded
	return nil
}

// UpdateEntry rewrites the entry text. date_added is left untouched.
func (r *TopicRepository) UpdateEntry(entry *domain.Entry, token string) error {
	client, err := r.client(token)
	if err != nil {
		return err
	}

	data, _, err := client.From(entriesTable).
		Update(map[string]interface{}{"text": entry.Text}, "representation", "").
		Eq("id", strconv.FormatInt(entry.ID, 10)).
		Execute()
	if err != nil {
		r.logger.Error("Failed to update entry in Supabase", err, "entry_id", entry.ID)
		return fmt.Errorf("failed to update entry: %w", err)
	}

	updated, err := decodeEntries(data)
	if err != nil {
		return err
	}
	if len(updated) == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func decodeTopics(data []byte) ([]*domain.Topic, error) {
	var topics []*domain.Topic
	if err := json.Unmarshal(data, &topics); err != nil {
		return nil, fmt.Errorf("failed to unmarshal topics: %w", err)
	}
	return topics, nil
}

func decodeEntries(data []byte) ([]*domain.Entry, error) {
	var entries []*domain.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entries: %w", err)
	}
	return entries, nil
}
