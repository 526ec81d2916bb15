package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sportlink-service/internal/apperr"
	"sportlink-service/internal/mocks"
	"sportlink-service/internal/models"
	"sportlink-service/internal/ws"
)

func newChatRouter(svc ChatService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewChatHandler(svc, ws.NewHub(zap.NewNop()), zap.NewNop())

	router := gin.New()
	router.POST("/user/chats", h.Start)
	router.GET("/user/chats/user/:userId", h.ListForUser)
	router.POST("/user/chats/messages", h.SendMessage)
	router.GET("/user/chats/messages", h.Messages)
	return router
}

func TestStartChatEndpointCreated(t *testing.T) {
	svc := new(mocks.ChatServiceMock)
	svc.On("Start", mock.Anything, 1, 2).
		Return(models.Chat{ID: 7, User1ID: 1, User2ID: 2}, true, nil).Once()
	router := newChatRouter(svc)

	body, _ := json.Marshal(gin.H{"user1_id": 1, "user2_id": 2})
	req := httptest.NewRequest(http.MethodPost, "/user/chats", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Chat    models.Chat `json:"chat"`
		Created bool        `json:"created"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Created)
	require.Equal(t, 7, resp.Chat.ID)
	svc.AssertExpectations(t)
}

func TestStartChatEndpointExisting(t *testing.T) {
	svc := new(mocks.ChatServiceMock)
	svc.On("Start", mock.Anything, 1, 2).
		Return(models.Chat{ID: 7, User1ID: 1, User2ID: 2}, false, nil).Once()
	router := newChatRouter(svc)

	body, _ := json.Marshal(gin.H{"user1_id": 1, "user2_id": 2})
	req := httptest.NewRequest(http.MethodPost, "/user/chats", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"created":false`)
}

func TestStartChatEndpointMissingField(t *testing.T) {
	svc := new(mocks.ChatServiceMock)
	router := newChatRouter(svc)

	body, _ := json.Marshal(gin.H{"user1_id": 1})
	req := httptest.NewRequest(http.MethodPost, "/user/chats", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Start", mock.Anything, mock.Anything, mock.Anything)
}

func TestStartChatEndpointUnknownUser(t *testing.T) {
	svc := new(mocks.ChatServiceMock)
	svc.On("Start", mock.Anything, 1, 9).
		Return(models.Chat{}, false, apperr.NotFound("user not found")).Once()
	router := newChatRouter(svc)

	body, _ := json.Marshal(gin.H{"user1_id": 1, "user2_id": 9})
	req := httptest.NewRequest(http.MethodPost, "/user/chats", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListChatsEndpointEmpty(t *testing.T) {
	svc := new(mocks.ChatServiceMock)
	svc.On("ListForUser", mock.Anything, 1).Return(nil, nil).Once()
	router := newChatRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/user/chats/user/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"chats":[]}`, w.Body.String())
}

func TestSendMessageEndpoint(t *testing.T) {
	svc := new(mocks.ChatServiceMock)
	svc.On("SendMessage", mock.Anything, 7, 1, "hello").
		Return(models.Message{ID: 41, ChatID: 7, SenderID: 1, ReceiverID: 2, Content: "hello"}, nil).Once()
	router := newChatRouter(svc)

	body, _ := json.Marshal(gin.H{"chat_id": 7, "sender_id": 1, "message": "hello"})
	req := httptest.NewRequest(http.MethodPost, "/user/chats/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Message models.Message `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Message.ReceiverID)
	require.Equal(t, "hello", resp.Message.Content)
	svc.AssertExpectations(t)
}

func TestSendMessageEndpointUnknownChat(t *testing.T) {
	svc := new(mocks.ChatServiceMock)
	svc.On("SendMessage", mock.Anything, 99, 1, "hello").
		Return(models.Message{}, apperr.NotFound("chat not found")).Once()
	router := newChatRouter(svc)

	body, _ := json.Marshal(gin.H{"chat_id": 99, "sender_id": 1, "message": "hello"})
	req := httptest.NewRequest(http.MethodPost, "/user/chats/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMessagesEndpoint(t *testing.T) {
	svc := new(mocks.ChatServiceMock)
	svc.On("Messages", mock.Anything, 7).Return([]models.Message{
		{ID: 1, ChatID: 7, SenderID: 1, ReceiverID: 2, Content: "hi"},
		{ID: 2, ChatID: 7, SenderID: 2, ReceiverID: 1, Content: "hey"},
	}, nil).Once()
	router := newChatRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/user/chats/messages?chatID=7&userId=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Messages []models.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 2)
	require.Equal(t, "hi", resp.Messages[0].Content)
	svc.AssertExpectations(t)
}

func TestMessagesEndpointRequiresParams(t *testing.T) {
	svc := new(mocks.ChatServiceMock)
	router := newChatRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/user/chats/messages?chatID=7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Messages", mock.Anything, mock.Anything)
}
