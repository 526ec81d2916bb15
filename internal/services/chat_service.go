package services

import (
	"context"
	"errors"
	"strings"

	"sportlink-service/internal/apperr"
	"sportlink-service/internal/models"
	"sportlink-service/internal/repositories"
)

// ChatService owns chat-channel de-duplication, message creation, and
// history retrieval with receiver derivation.
type ChatService struct {
	chatRepo    repositories.ChatRepository
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
}

// NewChatService constructs a ChatService.
func NewChatService(chatRepo repositories.ChatRepository, messageRepo repositories.MessageRepository, userRepo repositories.UserRepository) *ChatService {
	return &ChatService{chatRepo: chatRepo, messageRepo: messageRepo, userRepo: userRepo}
}

// Start returns the chat for the pair, creating it on first use. Requesting
// a chat for an existing pair is success, not an error; created reports
// which case occurred.
func (s *ChatService) Start(ctx context.Context, user1ID, user2ID int) (models.Chat, bool, error) {
	if user1ID == user2ID {
		return models.Chat{}, false, apperr.InvalidArgument("cannot chat with yourself")
	}

	for _, id := range []int{user1ID, user2ID} {
		exists, err := s.userRepo.Exists(ctx, id)
		if err != nil {
			return models.Chat{}, false, apperr.Internal("check user", err)
		}
		if !exists {
			return models.Chat{}, false, apperr.NotFound("user not found")
		}
	}

	chat, created, err := s.chatRepo.CreateOrGet(ctx, user1ID, user2ID)
	if err != nil {
		return models.Chat{}, false, apperr.Internal("create chat", err)
	}
	return chat, created, nil
}

// ListForUser returns chat summaries with the counterpart resolved.
func (s *ChatService) ListForUser(ctx context.Context, userID int) ([]models.ChatSummary, error) {
	chats, err := s.chatRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("list chats", err)
	}
	return chats, nil
}

// SendMessage persists a message with a server-assigned timestamp and
// returns it annotated with the derived receiver, ready for relay.
func (s *ChatService) SendMessage(ctx context.Context, chatID, senderID int, content string) (models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return models.Message{}, apperr.InvalidArgument("message body is required")
	}

	chat, err := s.chatRepo.GetChat(ctx, chatID)
	if errors.Is(err, repositories.ErrChatNotFound) {
		return models.Message{}, apperr.NotFound("chat not found")
	}
	if err != nil {
		return models.Message{}, apperr.Internal("get chat", err)
	}

	exists, err := s.userRepo.Exists(ctx, senderID)
	if err != nil {
		return models.Message{}, apperr.Internal("check sender", err)
	}
	if !exists {
		return models.Message{}, apperr.NotFound("sender not found")
	}
	if !chat.HasParticipant(senderID) {
		return models.Message{}, apperr.InvalidArgument("sender is not a chat participant")
	}

	msg, err := s.messageRepo.Create(ctx, chatID, senderID, content)
	if err != nil {
		return models.Message{}, apperr.Internal("store message", err)
	}
	msg.ReceiverID = chat.Counterpart(senderID)
	return msg, nil
}

// Messages returns the chat's history in ascending commit order, each
// message annotated with the participant who is not its sender. An empty
// history is an empty slice, not an error.
func (s *ChatService) Messages(ctx context.Context, chatID int) ([]models.Message, error) {
	chat, err := s.chatRepo.GetChat(ctx, chatID)
	if errors.Is(err, repositories.ErrChatNotFound) {
		return nil, apperr.NotFound("chat not found")
	}
	if err != nil {
		return nil, apperr.Internal("get chat", err)
	}

	msgs, err := s.messageRepo.ListForChat(ctx, chatID)
	if err != nil {
		return nil, apperr.Internal("list messages", err)
	}

	for i := range msgs {
		msgs[i].ReceiverID = chat.Counterpart(msgs[i].SenderID)
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	return msgs, nil
}
