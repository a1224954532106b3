package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
	"github.com/RahulRR-10/EchoSQL/internal/export"
	"github.com/RahulRR-10/EchoSQL/internal/viz"
)

// exportUsecase implements ExportUsecase.
type exportUsecase struct {
	sessions domain.SessionUsecase
	messages domain.MessageUsecase
	renderer domain.PDFRenderer
	logger   *slog.Logger
}

// NewExportUsecase creates a new ExportUsecase instance.
func NewExportUsecase(
	sessions domain.SessionUsecase,
	messages domain.MessageUsecase,
	renderer domain.PDFRenderer,
	logger *slog.Logger,
) domain.ExportUsecase {
	return &exportUsecase{
		sessions: sessions,
		messages: messages,
		renderer: renderer,
		logger:   logger,
	}
}

func (u *exportUsecase) Report(ctx context.Context, userID, sessionID string) (*domain.SessionReport, error) {
	session, err := u.sessions.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	messages, err := u.messages.ListMessages(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return buildReport(session, messages), nil
}

func buildReport(session *entity.Session, messages []*entity.Message) *domain.SessionReport {
	report := &domain.SessionReport{
		Session:      session,
		MessageCount: len(messages),
	}

	var totalMS int64
	for _, m := range messages {
		totalMS += m.ExecutionMS
		if m.Failed() {
			report.FailedCount++
		}
	}
	if len(messages) > 0 {
		report.AvgExecutionMS = totalMS / int64(len(messages))
		first := messages[0].CreatedAt
		last := messages[len(messages)-1].CreatedAt
		report.DurationMS = last.Sub(first).Milliseconds()
	}
	return report
}

// ExportPDF builds the HTML transcript, renders per-exchange charts, and
// converts the document through the external renderer.
func (u *exportUsecase) ExportPDF(ctx context.Context, userID, sessionID string) ([]byte, string, error) {
	session, err := u.sessions.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, "", err
	}
	messages, err := u.messages.ListMessages(ctx, userID, sessionID)
	if err != nil {
		return nil, "", err
	}

	// Charts in the PDF use the default cascade only; the recommendation
	// service is not consulted per exchange to keep export latency bounded.
	charts := make(map[string][]string, len(messages))
	for _, m := range messages {
		if m.Failed() || m.Result.IsEmpty() {
			continue
		}
		for _, spec := range viz.Select(m.Result, nil) {
			charts[m.ID] = append(charts[m.ID], viz.Render(spec))
		}
	}

	html, err := export.BuildHTML(session, messages, charts, buildReport(session, messages))
	if err != nil {
		return nil, "", fmt.Errorf("failed to build session report: %w", err)
	}

	filename := fmt.Sprintf("session-%s.pdf", session.ID)
	pdf, err := u.renderer.RenderHTML(ctx, html, filename)
	if err != nil {
		return nil, "", err
	}

	u.logger.Info("session exported",
		"session_id", sessionID, "user_id", userID, "pdf_bytes", len(pdf))
	return pdf, filename, nil
}
