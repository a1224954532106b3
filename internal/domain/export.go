package domain

import (
	"context"

	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
)

// PDFRenderer converts an HTML document to PDF via the external rendering
// service.
type PDFRenderer interface {
	RenderHTML(ctx context.Context, html []byte, filename string) ([]byte, error)
}

// SessionReport summarizes one session for the report endpoint and the PDF
// header.
type SessionReport struct {
	Session        *entity.Session
	MessageCount   int
	FailedCount    int
	AvgExecutionMS int64
	DurationMS     int64 // first to last exchange
}

// ExportUsecase builds session reports and PDF exports.
type ExportUsecase interface {
	// ExportPDF renders the full session transcript to PDF. The suggested
	// download filename comes back alongside the bytes.
	ExportPDF(ctx context.Context, userID, sessionID string) ([]byte, string, error)

	Report(ctx context.Context, userID, sessionID string) (*SessionReport, error)
}
