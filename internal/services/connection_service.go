package services

import (
	"context"
	"errors"

	"sportlink-service/internal/apperr"
	"sportlink-service/internal/models"
	"sportlink-service/internal/repositories"
)

const searchResultLimit = 10

// ConnectionService enforces the connection state machine: one record per
// unordered pair, no self-connections, and transitions only out of pending.
type ConnectionService struct {
	connRepo repositories.ConnectionRepository
	userRepo repositories.UserRepository
}

// NewConnectionService constructs a ConnectionService.
func NewConnectionService(connRepo repositories.ConnectionRepository, userRepo repositories.UserRepository) *ConnectionService {
	return &ConnectionService{connRepo: connRepo, userRepo: userRepo}
}

// Create inserts a pending request from requester to recipient.
func (s *ConnectionService) Create(ctx context.Context, requesterID, recipientID int) (models.Connection, error) {
	if requesterID == recipientID {
		return models.Connection{}, apperr.InvalidArgument("cannot connect with yourself")
	}

	exists, err := s.userRepo.Exists(ctx, recipientID)
	if err != nil {
		return models.Connection{}, apperr.Internal("check recipient", err)
	}
	if !exists {
		return models.Connection{}, apperr.NotFound("recipient not found")
	}

	if _, err := s.connRepo.FindBetween(ctx, requesterID, recipientID); err == nil {
		return models.Connection{}, apperr.Conflict("connection already exists")
	} else if !errors.Is(err, repositories.ErrConnectionNotFound) {
		return models.Connection{}, apperr.Internal("check existing connection", err)
	}

	conn, err := s.connRepo.Create(ctx, requesterID, recipientID)
	if errors.Is(err, repositories.ErrConnectionExists) {
		// Lost a race with a simultaneous request for the same pair.
		return models.Connection{}, apperr.Conflict("connection already exists")
	}
	if err != nil {
		return models.Connection{}, apperr.Internal("create connection", err)
	}
	return conn, nil
}

// Respond transitions the pending request from requester to recipient.
// Accepting persists the status; rejecting deletes the record so the pair
// may re-request later.
func (s *ConnectionService) Respond(ctx context.Context, recipientID, requesterID int, status models.ConnectionStatus) (models.Connection, error) {
	if !status.ValidResponse() {
		return models.Connection{}, apperr.InvalidArgument("status must be accepted or rejected")
	}

	pending, err := s.connRepo.FindPending(ctx, requesterID, recipientID)
	if errors.Is(err, repositories.ErrConnectionNotFound) {
		return models.Connection{}, apperr.NotFound("no pending connection request")
	}
	if err != nil {
		return models.Connection{}, apperr.Internal("find pending connection", err)
	}

	if status == models.ConnectionRejected {
		if err := s.connRepo.Delete(ctx, requesterID, recipientID); err != nil {
			if errors.Is(err, repositories.ErrConnectionNotFound) {
				// Lost a race with a concurrent response; the record is no
				// longer pending and must not be touched.
				return models.Connection{}, apperr.NotFound("no pending connection request")
			}
			return models.Connection{}, apperr.Internal("delete rejected connection", err)
		}
		pending.Status = models.ConnectionRejected
		return pending, nil
	}

	conn, err := s.connRepo.UpdateStatus(ctx, requesterID, recipientID, models.ConnectionAccepted)
	if errors.Is(err, repositories.ErrConnectionNotFound) {
		return models.Connection{}, apperr.NotFound("no pending connection request")
	}
	if err != nil {
		return models.Connection{}, apperr.Internal("accept connection", err)
	}
	return conn, nil
}

// List returns all records where the user is either party.
func (s *ConnectionService) List(ctx context.Context, userID int) ([]models.ConnectionWithUser, error) {
	conns, err := s.connRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("list connections", err)
	}
	return conns, nil
}

// ListPending returns incoming pending requests for the user.
func (s *ConnectionService) ListPending(ctx context.Context, userID int) ([]models.PendingConnection, error) {
	pending, err := s.connRepo.ListPending(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("list pending connections", err)
	}
	return pending, nil
}

// ListAccepted returns durable friend edges, newest first.
func (s *ConnectionService) ListAccepted(ctx context.Context, userID int) ([]models.AcceptedConnection, error) {
	accepted, err := s.connRepo.ListAccepted(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("list accepted connections", err)
	}
	return accepted, nil
}

// Status returns the relationship status between two users, or the
// ConnectionNone sentinel when no record exists. "No relationship" is an
// answer, not an error.
func (s *ConnectionService) Status(ctx context.Context, userID, counterpartID int) (models.ConnectionStatus, error) {
	if userID == counterpartID {
		return "", apperr.InvalidArgument("cannot query connection status with yourself")
	}

	conn, err := s.connRepo.FindBetween(ctx, userID, counterpartID)
	if errors.Is(err, repositories.ErrConnectionNotFound) {
		return models.ConnectionNone, nil
	}
	if err != nil {
		return "", apperr.Internal("find connection", err)
	}
	return conn.Status, nil
}

// SearchUsers matches names case-insensitively, excluding the requester.
func (s *ConnectionService) SearchUsers(ctx context.Context, query string, excludeUserID int) ([]models.UserSummary, error) {
	if query == "" {
		return nil, apperr.InvalidArgument("search query is required")
	}
	users, err := s.userRepo.Search(ctx, query, excludeUserID, searchResultLimit)
	if err != nil {
		return nil, apperr.Internal("search users", err)
	}
	return users, nil
}
