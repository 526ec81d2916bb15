package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sportlink-service/internal/apperr"
	"sportlink-service/internal/mocks"
	"sportlink-service/internal/models"
	"sportlink-service/internal/repositories"
)

func newConnectionService() (*ConnectionService, *mocks.ConnectionRepositoryMock, *mocks.UserRepositoryMock) {
	connRepo := new(mocks.ConnectionRepositoryMock)
	userRepo := new(mocks.UserRepositoryMock)
	return NewConnectionService(connRepo, userRepo), connRepo, userRepo
}

func TestCreateConnectionRejectsSelf(t *testing.T) {
	svc, connRepo, _ := newConnectionService()

	_, err := svc.Create(context.Background(), 1, 1)

	require.Error(t, err)
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	connRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateConnectionUnknownRecipient(t *testing.T) {
	svc, _, userRepo := newConnectionService()

	userRepo.On("Exists", mock.Anything, 2).Return(false, nil).Once()

	_, err := svc.Create(context.Background(), 1, 2)

	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	userRepo.AssertExpectations(t)
}

func TestCreateConnectionDuplicateEitherDirection(t *testing.T) {
	svc, connRepo, userRepo := newConnectionService()

	userRepo.On("Exists", mock.Anything, 1).Return(true, nil).Once()
	connRepo.On("FindBetween", mock.Anything, 2, 1).
		Return(models.Connection{RequesterID: 1, RecipientID: 2, Status: models.ConnectionPending}, nil).Once()

	_, err := svc.Create(context.Background(), 2, 1)

	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	connRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	connRepo.AssertExpectations(t)
}

func TestCreateConnectionLosesInsertRace(t *testing.T) {
	svc, connRepo, userRepo := newConnectionService()

	userRepo.On("Exists", mock.Anything, 2).Return(true, nil).Once()
	connRepo.On("FindBetween", mock.Anything, 1, 2).
		Return(models.Connection{}, repositories.ErrConnectionNotFound).Once()
	connRepo.On("Create", mock.Anything, 1, 2).
		Return(models.Connection{}, repositories.ErrConnectionExists).Once()

	_, err := svc.Create(context.Background(), 1, 2)

	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	connRepo.AssertExpectations(t)
}

func TestCreateConnectionSuccess(t *testing.T) {
	svc, connRepo, userRepo := newConnectionService()

	want := models.Connection{RequesterID: 1, RecipientID: 2, Status: models.ConnectionPending}
	userRepo.On("Exists", mock.Anything, 2).Return(true, nil).Once()
	connRepo.On("FindBetween", mock.Anything, 1, 2).
		Return(models.Connection{}, repositories.ErrConnectionNotFound).Once()
	connRepo.On("Create", mock.Anything, 1, 2).Return(want, nil).Once()

	conn, err := svc.Create(context.Background(), 1, 2)

	require.NoError(t, err)
	require.Equal(t, want, conn)
	connRepo.AssertExpectations(t)
}

func TestRespondRejectsBadStatus(t *testing.T) {
	svc, _, _ := newConnectionService()

	_, err := svc.Respond(context.Background(), 2, 1, models.ConnectionPending)

	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestRespondNoPendingRequest(t *testing.T) {
	svc, connRepo, _ := newConnectionService()

	connRepo.On("FindPending", mock.Anything, 1, 2).
		Return(models.Connection{}, repositories.ErrConnectionNotFound).Once()

	_, err := svc.Respond(context.Background(), 2, 1, models.ConnectionAccepted)

	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	connRepo.AssertExpectations(t)
}

func TestRespondAcceptPersists(t *testing.T) {
	svc, connRepo, _ := newConnectionService()

	pending := models.Connection{RequesterID: 1, RecipientID: 2, Status: models.ConnectionPending}
	accepted := pending
	accepted.Status = models.ConnectionAccepted

	connRepo.On("FindPending", mock.Anything, 1, 2).Return(pending, nil).Once()
	connRepo.On("UpdateStatus", mock.Anything, 1, 2, models.ConnectionAccepted).Return(accepted, nil).Once()

	conn, err := svc.Respond(context.Background(), 2, 1, models.ConnectionAccepted)

	require.NoError(t, err)
	require.Equal(t, models.ConnectionAccepted, conn.Status)
	connRepo.AssertExpectations(t)
}

func TestRespondRejectDeletesRecord(t *testing.T) {
	svc, connRepo, _ := newConnectionService()

	pending := models.Connection{RequesterID: 1, RecipientID: 2, Status: models.ConnectionPending}
	connRepo.On("FindPending", mock.Anything, 1, 2).Return(pending, nil).Once()
	connRepo.On("Delete", mock.Anything, 1, 2).Return(nil).Once()

	conn, err := svc.Respond(context.Background(), 2, 1, models.ConnectionRejected)

	require.NoError(t, err)
	require.Equal(t, models.ConnectionRejected, conn.Status)
	connRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	connRepo.AssertExpectations(t)
}

func TestRespondRejectLosesRaceWithAccept(t *testing.T) {
	svc, connRepo, _ := newConnectionService()

	// FindPending saw a pending record, but a concurrent accept commits
	// before the delete runs. The store only deletes pending rows, so the
	// accepted edge survives and the reject reports no pending request.
	pending := models.Connection{RequesterID: 1, RecipientID: 2, Status: models.ConnectionPending}
	connRepo.On("FindPending", mock.Anything, 1, 2).Return(pending, nil).Once()
	connRepo.On("Delete", mock.Anything, 1, 2).Return(repositories.ErrConnectionNotFound).Once()

	_, err := svc.Respond(context.Background(), 2, 1, models.ConnectionRejected)

	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	connRepo.AssertExpectations(t)
}

func TestStatusRejectsSelfQuery(t *testing.T) {
	svc, _, _ := newConnectionService()

	_, err := svc.Status(context.Background(), 3, 3)

	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestStatusNoRelationshipIsNotAnError(t *testing.T) {
	svc, connRepo, _ := newConnectionService()

	connRepo.On("FindBetween", mock.Anything, 1, 2).
		Return(models.Connection{}, repositories.ErrConnectionNotFound).Once()

	status, err := svc.Status(context.Background(), 1, 2)

	require.NoError(t, err)
	require.Equal(t, models.ConnectionNone, status)
	connRepo.AssertExpectations(t)
}

func TestSearchUsersRequiresQuery(t *testing.T) {
	svc, _, _ := newConnectionService()

	_, err := svc.SearchUsers(context.Background(), "", 1)

	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestSearchUsersLimitsResults(t *testing.T) {
	svc, _, userRepo := newConnectionService()

	userRepo.On("Search", mock.Anything, "ron", 1, 10).
		Return([]models.UserSummary{{ID: 2, Name: "Ronaldo", Role: "athlete"}}, nil).Once()

	users, err := svc.SearchUsers(context.Background(), "ron", 1)

	require.NoError(t, err)
	require.Len(t, users, 1)
	userRepo.AssertExpectations(t)
}
