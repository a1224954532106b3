package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
)

func TestSessionLifecycle(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	messageRepo := newFakeMessageRepo()
	uc := NewSessionUsecase(sessionRepo, messageRepo, discardLogger())
	ctx := context.Background()

	session, err := uc.CreateSession(ctx, "u-1", "  ", "prof-1")
	require.NoError(t, err)
	assert.Equal(t, "New session", session.Title, "blank title gets the placeholder")
	assert.Equal(t, "prof-1", session.DatabaseID)

	got, err := uc.GetSession(ctx, "u-1", session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)

	require.NoError(t, uc.RenameSession(ctx, "u-1", session.ID, "Q3 analysis"))
	got, _ = uc.GetSession(ctx, "u-1", session.ID)
	assert.Equal(t, "Q3 analysis", got.Title)

	sessions, total, err := uc.ListSessions(ctx, "u-1", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, sessions, 1)

	require.NoError(t, uc.DeleteSession(ctx, "u-1", session.ID))
	_, err = uc.GetSession(ctx, "u-1", session.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestSessionOwnership(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	uc := NewSessionUsecase(sessionRepo, newFakeMessageRepo(), discardLogger())
	ctx := context.Background()

	session, err := uc.CreateSession(ctx, "u-1", "mine", "")
	require.NoError(t, err)

	_, err = uc.GetSession(ctx, "u-2", session.ID)
	assert.True(t, domain.IsForbidden(err))
	assert.True(t, domain.IsForbidden(uc.RenameSession(ctx, "u-2", session.ID, "x")))
	assert.True(t, domain.IsForbidden(uc.DeleteSession(ctx, "u-2", session.ID)))
}

func TestDeleteSessionRemovesMessages(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	messageRepo := newFakeMessageRepo()
	uc := NewSessionUsecase(sessionRepo, messageRepo, discardLogger())
	ctx := context.Background()

	session, err := uc.CreateSession(ctx, "u-1", "with messages", "")
	require.NoError(t, err)
	require.NoError(t, messageRepo.Create(ctx, &entity.Message{SessionID: session.ID, Question: "q"}))

	require.NoError(t, uc.DeleteSession(ctx, "u-1", session.ID))
	assert.Empty(t, messageRepo.messages)
}
