package store

import (
	"context"

	"github.com/scrimhub/scrimhub/internal/model"
	"github.com/scrimhub/scrimhub/internal/rowstore"
)

type MessageStore struct {
	db rowstore.Store
}

func NewMessageStore(db rowstore.Store) *MessageStore {
	return &MessageStore{db: db}
}

func messageFromRow(r rowstore.Row) *model.Message {
	return &model.Message{
		MessageID: r.Get("messageId"),
		Name:      r.Get("name"),
		Email:     r.Get("email"),
		Subject:   r.Get("subject"),
		Body:      r.Get("body"),
		Timestamp: r.Get("timestamp"),
	}
}

func messageFields(m *model.Message) map[string]string {
	return map[string]string{
		"messageId": m.MessageID,
		"name":      m.Name,
		"email":     m.Email,
		"subject":   m.Subject,
		"body":      m.Body,
		"timestamp": m.Timestamp,
	}
}

func (s *MessageStore) ListMessages(ctx context.Context) ([]model.Message, error) {
	rows, err := s.db.Scan(ctx, TableMessages)
	if err != nil {
		return nil, err
	}
	messages := make([]model.Message, 0, len(rows))
	for _, r := range rows {
		messages = append(messages, *messageFromRow(r))
	}
	return messages, nil
}

func (s *MessageStore) CreateMessage(ctx context.Context, m *model.Message) error {
	return s.db.Append(ctx, TableMessages, messageFields(m))
}
