package domain

import "time"

// TopicTextMaxLength bounds the length of a topic name.
const TopicTextMaxLength = 200

// Topic is something the user is learning about.
type Topic struct {
	ID        int64     `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Text      string    `json:"text"`
	DateAdded time.Time `json:"date_added"`
}

// Entry is a dated note under a topic.
type Entry struct {
	ID        int64     `json:"id"`
	TopicID   int64     `json:"topic_id"`
	Text      string    `json:"text"`
	DateAdded time.Time `json:"date_added"`
}

// TopicWithEntries is the payload of the topic detail endpoint.
type TopicWithEntries struct {
	Topic   *Topic   `json:"topic"`
	Entries []*Entry `json:"entries"`
}

// TopicRepository defines persistence operations for topics and entries.
type TopicRepository interface {
	ListTopics(ownerID string, token string) ([]*Topic, error)
	GetTopic(id int64, token string) (*Topic, error)
	CreateTopic(topic *Topic, token string) error
	ListEntries(topicID int64, token string) ([]*Entry, error)
	GetEntry(id int64, token string) (*Entry, error)
	CreateEntry(entry *Entry, token string) error
	UpdateEntry(entry *Entry, token string) error
}

// TopicService defines the use-case operations for topics and entries.
type TopicService interface {
	ListTopics(ownerID string, token string) ([]*Topic, error)
	GetTopic(ownerID string, topicID int64, token string) (*TopicWithEntries, error)
	CreateTopic(ownerID string, text string, token string) (*Topic, error)
	CreateEntry(ownerID string, topicID int64, text string, token string) (*Entry, error)
	UpdateEntry(ownerID string, entryID int64, text string, token string) (*Entry, error)
}
