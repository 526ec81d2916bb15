package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sportlink-service/internal/models"
)

type ConnectionServiceMock struct {
	mock.Mock
}

func (m *ConnectionServiceMock) Create(ctx context.Context, requesterID, recipientID int) (models.Connection, error) {
	args := m.Called(ctx, requesterID, recipientID)
	var conn models.Connection
	if val := args.Get(0); val != nil {
		conn = val.(models.Connection)
	}
	return conn, args.Error(1)
}

func (m *ConnectionServiceMock) Respond(ctx context.Context, recipientID, requesterID int, status models.ConnectionStatus) (models.Connection, error) {
	args := m.Called(ctx, recipientID, requesterID, status)
	var conn models.Connection
	if val := args.Get(0); val != nil {
		conn = val.(models.Connection)
	}
	return conn, args.Error(1)
}

func (m *ConnectionServiceMock) List(ctx context.Context, userID int) ([]models.ConnectionWithUser, error) {
	args := m.Called(ctx, userID)
	var conns []models.ConnectionWithUser
	if val := args.Get(0); val != nil {
		conns = val.([]models.ConnectionWithUser)
	}
	return conns, args.Error(1)
}

func (m *ConnectionServiceMock) ListPending(ctx context.Context, userID int) ([]models.PendingConnection, error) {
	args := m.Called(ctx, userID)
	var pending []models.PendingConnection
	if val := args.Get(0); val != nil {
		pending = val.([]models.PendingConnection)
	}
	return pending, args.Error(1)
}

func (m *ConnectionServiceMock) ListAccepted(ctx context.Context, userID int) ([]models.AcceptedConnection, error) {
	args := m.Called(ctx, userID)
	var accepted []models.AcceptedConnection
	if val := args.Get(0); val != nil {
		accepted = val.([]models.AcceptedConnection)
	}
	return accepted, args.Error(1)
}

func (m *ConnectionServiceMock) Status(ctx context.Context, userID, counterpartID int) (models.ConnectionStatus, error) {
	args := m.Called(ctx, userID, counterpartID)
	var status models.ConnectionStatus
	if val := args.Get(0); val != nil {
		status = val.(models.ConnectionStatus)
	}
	return status, args.Error(1)
}

func (m *ConnectionServiceMock) SearchUsers(ctx context.Context, query string, excludeUserID int) ([]models.UserSummary, error) {
	args := m.Called(ctx, query, excludeUserID)
	var users []models.UserSummary
	if val := args.Get(0); val != nil {
		users = val.([]models.UserSummary)
	}
	return users, args.Error(1)
}

type ChatServiceMock struct {
	mock.Mock
}

func (m *ChatServiceMock) Start(ctx context.Context, user1ID, user2ID int) (models.Chat, bool, error) {
	args := m.Called(ctx, user1ID, user2ID)
	var chat models.Chat
	if val := args.Get(0); val != nil {
		chat = val.(models.Chat)
	}
	return chat, args.Bool(1), args.Error(2)
}

func (m *ChatServiceMock) ListForUser(ctx context.Context, userID int) ([]models.ChatSummary, error) {
	args := m.Called(ctx, userID)
	var chats []models.ChatSummary
	if val := args.Get(0); val != nil {
		chats = val.([]models.ChatSummary)
	}
	return chats, args.Error(1)
}

func (m *ChatServiceMock) SendMessage(ctx context.Context, chatID, senderID int, content string) (models.Message, error) {
	args := m.Called(ctx, chatID, senderID, content)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *ChatServiceMock) Messages(ctx context.Context, chatID int) ([]models.Message, error) {
	args := m.Called(ctx, chatID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}
