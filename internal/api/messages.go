package api

import (
	"context"

	"staynest/internal/models"
)

// MessagesService wraps the guest/host messaging endpoints.
type MessagesService struct {
	client *Client
}

func (s *MessagesService) Conversations(ctx context.Context) ([]models.Conversation, error) {
	var conversations []models.Conversation
	if err := s.client.get(ctx, "/conversations", "messages", &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

func (s *MessagesService) Messages(ctx context.Context, conversationID string) ([]models.Message, error) {
	var messages []models.Message
	path := "/conversations/" + escape(conversationID) + "/messages"
	if err := s.client.get(ctx, path, "messages", &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *MessagesService) Send(ctx context.Context, conversationID, body string) (*models.Message, error) {
	var message models.Message
	path := "/conversations/" + escape(conversationID) + "/messages"
	req := models.SendMessageRequest{Body: body}
	if err := s.client.post(ctx, path, "messages", req, &message); err != nil {
		return nil, err
	}
	return &message, nil
}
