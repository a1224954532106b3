package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
	"github.com/RahulRR-10/EchoSQL/internal/viz"
)

func exportFixture(t *testing.T, renderer domain.PDFRenderer) (domain.ExportUsecase, *entity.Session) {
	t.Helper()
	ctx := context.Background()

	sessionRepo := newFakeSessionRepo()
	messageRepo := newFakeMessageRepo()

	session := &entity.Session{UserID: "u-1", Title: "Quarterly numbers"}
	require.NoError(t, sessionRepo.Create(ctx, session))

	for _, m := range []*entity.Message{
		{
			SessionID:   session.ID,
			Question:    "total sales by region",
			Query:       "SELECT region, sales FROM t",
			QueryType:   entity.QueryTypeSQL,
			ExecutionMS: 100,
			Result: viz.NewTable([]string{"region", "sales"}, []viz.Row{
				{"region": "north", "sales": 100.0},
			}),
		},
		{
			SessionID:    session.ID,
			Question:     "broken question",
			ErrorMessage: "no such table",
			ExecutionMS:  300,
		},
	} {
		require.NoError(t, messageRepo.Create(ctx, m))
	}

	sessions := NewSessionUsecase(sessionRepo, messageRepo, discardLogger())
	messages := NewMessageUsecase(sessionRepo, messageRepo, newFakeProfileRepo(), &fakeAgent{}, discardLogger())
	uc := NewExportUsecase(sessions, messages, renderer, discardLogger())
	return uc, session
}

func TestReport(t *testing.T) {
	uc, session := exportFixture(t, &fakeRenderer{})

	report, err := uc.Report(context.Background(), "u-1", session.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, report.MessageCount)
	assert.Equal(t, 1, report.FailedCount)
	assert.Equal(t, int64(200), report.AvgExecutionMS)
	assert.GreaterOrEqual(t, report.DurationMS, int64(0))
}

func TestReportOwnership(t *testing.T) {
	uc, session := exportFixture(t, &fakeRenderer{})
	_, err := uc.Report(context.Background(), "u-2", session.ID)
	assert.True(t, domain.IsForbidden(err))
}

func TestExportPDF(t *testing.T) {
	renderer := &fakeRenderer{}
	uc, session := exportFixture(t, renderer)

	pdf, filename, err := uc.ExportPDF(context.Background(), "u-1", session.ID)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"))
	assert.Equal(t, "session-"+session.ID+".pdf", filename)

	doc := string(renderer.gotHTML)
	assert.Contains(t, doc, "Quarterly numbers")
	assert.Contains(t, doc, "total sales by region")
	assert.Contains(t, doc, "<svg", "successful exchanges get charts")
	assert.Contains(t, doc, "no such table", "failed exchanges appear with their error")
}

func TestExportPDFRendererDown(t *testing.T) {
	renderer := &fakeRenderer{err: domain.NewUnavailableError("renderer", errors.New("timeout"))}
	uc, session := exportFixture(t, renderer)

	_, _, err := uc.ExportPDF(context.Background(), "u-1", session.ID)
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
}
