package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
	"github.com/RahulRR-10/EchoSQL/internal/viz"
)

func askFixture(t *testing.T, agent domain.AgentClient) (domain.MessageUsecase, *fakeSessionRepo, *fakeMessageRepo, *entity.Session) {
	t.Helper()

	sessionRepo := newFakeSessionRepo()
	messageRepo := newFakeMessageRepo()
	profileRepo := newFakeProfileRepo()

	session := &entity.Session{UserID: "u-1", Title: "New session"}
	require.NoError(t, sessionRepo.Create(context.Background(), session))

	profile := &entity.DatabaseProfile{
		ID:       "prof-1",
		UserID:   "u-1",
		Name:     "shop",
		Type:     entity.DatabaseTypeMySQL,
		Host:     "db.local",
		Database: "shop",
	}
	require.NoError(t, profileRepo.Create(context.Background(), profile))

	uc := NewMessageUsecase(sessionRepo, messageRepo, profileRepo, agent, discardLogger())
	return uc, sessionRepo, messageRepo, session
}

func TestAsk(t *testing.T) {
	agent := &fakeAgent{answer: &domain.AgentAnswer{
		Query:     "SELECT region, SUM(sales) FROM orders GROUP BY region",
		QueryType: entity.QueryTypeSQL,
		Result: viz.NewTable([]string{"region", "sales"}, []viz.Row{
			{"region": "north", "sales": 100.0},
		}),
		Summary:      "North sold 100.",
		Title:        "Sales by region",
		DatabaseType: "mysql",
	}}
	uc, sessionRepo, messageRepo, session := askFixture(t, agent)

	msg, err := uc.Ask(context.Background(), "u-1", &domain.AskRequest{
		SessionID:  session.ID,
		DatabaseID: "prof-1",
		Question:   "  total sales by region  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "total sales by region", msg.Question, "question is trimmed")
	assert.Equal(t, "total sales by region", agent.gotQuestion)
	assert.Equal(t, "prof-1", agent.gotProfile.ID)
	assert.Equal(t, entity.QueryTypeSQL, msg.QueryType)
	assert.False(t, msg.Failed())
	assert.Len(t, messageRepo.messages, 1)

	// Session picks up the agent's generated title.
	updated, err := sessionRepo.GetByID(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sales by region", updated.Title)
}

func TestAskFallsBackToQuestionTitle(t *testing.T) {
	agent := &fakeAgent{answer: &domain.AgentAnswer{
		QueryType: entity.QueryTypeSQL,
		Result:    viz.NewTable([]string{"n"}, []viz.Row{{"n": 1.0}}),
	}}
	uc, sessionRepo, _, session := askFixture(t, agent)

	_, err := uc.Ask(context.Background(), "u-1", &domain.AskRequest{
		SessionID:  session.ID,
		DatabaseID: "prof-1",
		Question:   "how many users signed up",
	})
	require.NoError(t, err)

	updated, _ := sessionRepo.GetByID(context.Background(), session.ID)
	assert.Equal(t, "how many users signed up", updated.Title)
}

func TestAskPersistsAgentFailure(t *testing.T) {
	agent := &fakeAgent{answer: &domain.AgentAnswer{
		ErrorMessage: "could not translate question: ambiguous table",
	}}
	uc, _, messageRepo, session := askFixture(t, agent)

	msg, err := uc.Ask(context.Background(), "u-1", &domain.AskRequest{
		SessionID:  session.ID,
		DatabaseID: "prof-1",
		Question:   "something confusing",
	})
	require.NoError(t, err, "agent-reported failures still persist")
	assert.True(t, msg.Failed())
	assert.Len(t, messageRepo.messages, 1)
}

func TestAskValidation(t *testing.T) {
	agent := &fakeAgent{answer: &domain.AgentAnswer{}}
	uc, _, _, session := askFixture(t, agent)
	ctx := context.Background()

	tests := []struct {
		name   string
		userID string
		req    *domain.AskRequest
		check  func(error) bool
	}{
		{
			name:   "empty question",
			userID: "u-1",
			req:    &domain.AskRequest{SessionID: session.ID, DatabaseID: "prof-1", Question: "   "},
			check:  domain.IsInvalidInput,
		},
		{
			name:   "unknown session",
			userID: "u-1",
			req:    &domain.AskRequest{SessionID: "nope", DatabaseID: "prof-1", Question: "q"},
			check:  domain.IsNotFound,
		},
		{
			name:   "foreign session",
			userID: "u-2",
			req:    &domain.AskRequest{SessionID: session.ID, DatabaseID: "prof-1", Question: "q"},
			check:  domain.IsForbidden,
		},
		{
			name:   "no database profile anywhere",
			userID: "u-1",
			req:    &domain.AskRequest{SessionID: session.ID, Question: "q"},
			check:  domain.IsInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Ask(ctx, tt.userID, tt.req)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error class: %v", err)
		})
	}
}

func TestAskUsesSessionDefaultProfile(t *testing.T) {
	agent := &fakeAgent{answer: &domain.AgentAnswer{QueryType: entity.QueryTypeSQL}}
	uc, sessionRepo, _, session := askFixture(t, agent)

	session.DatabaseID = "prof-1"
	sessionRepo.sessions[session.ID].DatabaseID = "prof-1"

	_, err := uc.Ask(context.Background(), "u-1", &domain.AskRequest{
		SessionID: session.ID,
		Question:  "q",
	})
	require.NoError(t, err)
	assert.Equal(t, "prof-1", agent.gotProfile.ID)
}

func TestAskAgentTransportError(t *testing.T) {
	agent := &fakeAgent{err: domain.NewUnavailableError("agent", errors.New("connection refused"))}
	uc, _, messageRepo, session := askFixture(t, agent)

	_, err := uc.Ask(context.Background(), "u-1", &domain.AskRequest{
		SessionID:  session.ID,
		DatabaseID: "prof-1",
		Question:   "q",
	})
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.Empty(t, messageRepo.messages, "transport failures persist nothing")
}

func TestListMessagesOwnership(t *testing.T) {
	agent := &fakeAgent{answer: &domain.AgentAnswer{QueryType: entity.QueryTypeSQL}}
	uc, _, _, session := askFixture(t, agent)
	ctx := context.Background()

	_, err := uc.Ask(ctx, "u-1", &domain.AskRequest{
		SessionID: session.ID, DatabaseID: "prof-1", Question: "q",
	})
	require.NoError(t, err)

	msgs, err := uc.ListMessages(ctx, "u-1", session.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)

	_, err = uc.ListMessages(ctx, "u-2", session.ID)
	assert.True(t, domain.IsForbidden(err))
}

func TestGetMessageOwnership(t *testing.T) {
	agent := &fakeAgent{answer: &domain.AgentAnswer{QueryType: entity.QueryTypeSQL}}
	uc, _, messageRepo, session := askFixture(t, agent)
	ctx := context.Background()

	msg, err := uc.Ask(ctx, "u-1", &domain.AskRequest{
		SessionID: session.ID, DatabaseID: "prof-1", Question: "q",
	})
	require.NoError(t, err)
	require.Len(t, messageRepo.messages, 1)

	got, err := uc.GetMessage(ctx, "u-1", msg.ID)
	require.NoError(t, err)
	assert.Equal(t, msg.ID, got.ID)

	_, err = uc.GetMessage(ctx, "u-2", msg.ID)
	assert.True(t, domain.IsForbidden(err))
}
