package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sportlink-service/internal/models"
	"sportlink-service/internal/repositories"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) GetUser(ctx context.Context, userID int) (models.User, error) {
	args := m.Called(ctx, userID)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) Exists(ctx context.Context, userID int) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepositoryMock) Search(ctx context.Context, query string, excludeUserID int, limit int) ([]models.UserSummary, error) {
	args := m.Called(ctx, query, excludeUserID, limit)
	var users []models.UserSummary
	if val := args.Get(0); val != nil {
		users = val.([]models.UserSummary)
	}
	return users, args.Error(1)
}

type ConnectionRepositoryMock struct {
	mock.Mock
}

func (m *ConnectionRepositoryMock) Create(ctx context.Context, requesterID, recipientID int) (models.Connection, error) {
	args := m.Called(ctx, requesterID, recipientID)
	var conn models.Connection
	if val := args.Get(0); val != nil {
		conn = val.(models.Connection)
	}
	return conn, args.Error(1)
}

func (m *ConnectionRepositoryMock) FindBetween(ctx context.Context, userID, counterpartID int) (models.Connection, error) {
	args := m.Called(ctx, userID, counterpartID)
	var conn models.Connection
	if val := args.Get(0); val != nil {
		conn = val.(models.Connection)
	}
	return conn, args.Error(1)
}

func (m *ConnectionRepositoryMock) FindPending(ctx context.Context, requesterID, recipientID int) (models.Connection, error) {
	args := m.Called(ctx, requesterID, recipientID)
	var conn models.Connection
	if val := args.Get(0); val != nil {
		conn = val.(models.Connection)
	}
	return conn, args.Error(1)
}

func (m *ConnectionRepositoryMock) UpdateStatus(ctx context.Context, requesterID, recipientID int, status models.ConnectionStatus) (models.Connection, error) {
	args := m.Called(ctx, requesterID, recipientID, status)
	var conn models.Connection
	if val := args.Get(0); val != nil {
		conn = val.(models.Connection)
	}
	return conn, args.Error(1)
}

func (m *ConnectionRepositoryMock) Delete(ctx context.Context, requesterID, recipientID int) error {
	args := m.Called(ctx, requesterID, recipientID)
	return args.Error(0)
}

func (m *ConnectionRepositoryMock) ListForUser(ctx context.Context, userID int) ([]models.ConnectionWithUser, error) {
	args := m.Called(ctx, userID)
	var conns []models.ConnectionWithUser
	if val := args.Get(0); val != nil {
		conns = val.([]models.ConnectionWithUser)
	}
	return conns, args.Error(1)
}

func (m *ConnectionRepositoryMock) ListPending(ctx context.Context, userID int) ([]models.PendingConnection, error) {
	args := m.Called(ctx, userID)
	var pending []models.PendingConnection
	if val := args.Get(0); val != nil {
		pending = val.([]models.PendingConnection)
	}
	return pending, args.Error(1)
}

func (m *ConnectionRepositoryMock) ListAccepted(ctx context.Context, userID int) ([]models.AcceptedConnection, error) {
	args := m.Called(ctx, userID)
	var accepted []models.AcceptedConnection
	if val := args.Get(0); val != nil {
		accepted = val.([]models.AcceptedConnection)
	}
	return accepted, args.Error(1)
}

type ChatRepositoryMock struct {
	mock.Mock
}

func (m *ChatRepositoryMock) CreateOrGet(ctx context.Context, userID, counterpartID int) (models.Chat, bool, error) {
	args := m.Called(ctx, userID, counterpartID)
	var chat models.Chat
	if val := args.Get(0); val != nil {
		chat = val.(models.Chat)
	}
	return chat, args.Bool(1), args.Error(2)
}

func (m *ChatRepositoryMock) GetChat(ctx context.Context, chatID int) (models.Chat, error) {
	args := m.Called(ctx, chatID)
	var chat models.Chat
	if val := args.Get(0); val != nil {
		chat = val.(models.Chat)
	}
	return chat, args.Error(1)
}

func (m *ChatRepositoryMock) IsParticipant(ctx context.Context, chatID, userID int) (bool, error) {
	args := m.Called(ctx, chatID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *ChatRepositoryMock) ListForUser(ctx context.Context, userID int) ([]models.ChatSummary, error) {
	args := m.Called(ctx, userID)
	var chats []models.ChatSummary
	if val := args.Get(0); val != nil {
		chats = val.([]models.ChatSummary)
	}
	return chats, args.Error(1)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) Create(ctx context.Context, chatID, senderID int, content string) (models.Message, error) {
	args := m.Called(ctx, chatID, senderID, content)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) ListForChat(ctx context.Context, chatID int) ([]models.Message, error) {
	args := m.Called(ctx, chatID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

var _ repositories.UserRepository = (*UserRepositoryMock)(nil)
var _ repositories.ConnectionRepository = (*ConnectionRepositoryMock)(nil)
var _ repositories.ChatRepository = (*ChatRepositoryMock)(nil)
var _ repositories.MessageRepository = (*MessageRepositoryMock)(nil)
