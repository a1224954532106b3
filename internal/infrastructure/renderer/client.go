package renderer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	hzclient "github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
)

// client converts HTML to PDF through a Gotenberg-compatible rendering
// service.
type client struct {
	http    *hzclient.Client
	baseURL string
	timeout time.Duration
	logger  *slog.Logger
}

// NewClient creates the PDF renderer client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (domain.PDFRenderer, error) {
	c, err := hzclient.NewClient(
		hzclient.WithDialTimeout(10 * time.Second),
		hzclient.WithMaxIdleConnDuration(60 * time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer client: %w", err)
	}

	logger.Info("renderer client created", "base_url", baseURL, "timeout", timeout)

	return &client{
		http:    c,
		baseURL: baseURL,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// RenderHTML posts the document as multipart form data. The service
// requires the entry file to be named index.html.
func (c *client) RenderHTML(ctx context.Context, html []byte, filename string) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(html); err != nil {
		return nil, fmt.Errorf("failed to write multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.baseURL + "/forms/chromium/convert/html")
	req.Header.SetContentTypeBytes([]byte(mw.FormDataContentType()))
	req.SetBody(body.Bytes())

	if err := c.http.Do(ctx, req, resp); err != nil {
		return nil, domain.NewUnavailableError("renderer", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, domain.NewUnavailableError("renderer",
			fmt.Errorf("renderer returned HTTP %d", resp.StatusCode()))
	}

	pdf := append([]byte(nil), resp.Body()...)
	c.logger.Debug("pdf rendered", "filename", filename, "bytes", len(pdf))
	return pdf, nil
}
