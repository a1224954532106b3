package recommender

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	hzclient "github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/viz"
)

// Wire format of the chart recommendation service.
type recommendRequest struct {
	SQLResultJSON string `json:"sql_result_json"`
	UserQuery     string `json:"user_query"`
	SQLQuery      string `json:"sql_query"`
}

type recommendResponse struct {
	ShouldVisualize   bool     `json:"should_visualize"`
	Reason            string   `json:"reason"`
	RecommendedGraphs []string `json:"recommended_graphs"`
}

// client is the HTTP implementation of RecommenderClient. Callers treat any
// returned error as "no recommendation" and run the engine anyway.
type client struct {
	http    *hzclient.Client
	baseURL string
	timeout time.Duration
	logger  *slog.Logger
}

// NewClient creates the recommendation client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (domain.RecommenderClient, error) {
	c, err := hzclient.NewClient(
		hzclient.WithDialTimeout(10 * time.Second),
		hzclient.WithMaxIdleConnDuration(60 * time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create recommender client: %w", err)
	}

	logger.Info("recommender client created", "base_url", baseURL, "timeout", timeout)

	return &client{
		http:    c,
		baseURL: baseURL,
		timeout: timeout,
		logger:  logger,
	}, nil
}

func (c *client) Recommend(ctx context.Context, result viz.Table, question, query string) (*domain.Recommendation, error) {
	resultJSON, err := sonic.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result rows: %w", err)
	}

	bodyBytes, err := sonic.Marshal(recommendRequest{
		SQLResultJSON: string(resultJSON),
		UserQuery:     question,
		SQLQuery:      query,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recommend request: %w", err)
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
	req.SetRequestURI(c.baseURL + "/graphrecommender")
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.SetBody(bodyBytes)

	if err := c.http.Do(ctx, req, resp); err != nil {
		return nil, domain.NewUnavailableError("recommender", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, domain.NewUnavailableError("recommender",
			fmt.Errorf("recommender returned HTTP %d", resp.StatusCode()))
	}

	var out recommendResponse
	if err := sonic.Unmarshal(resp.Body(), &out); err != nil {
		return nil, domain.NewUnavailableError("recommender",
			fmt.Errorf("failed to unmarshal recommender response: %w", err))
	}

	c.logger.Debug("recommendation received",
		"should_visualize", out.ShouldVisualize,
		"graphs", out.RecommendedGraphs,
	)
	return &domain.Recommendation{
		ShouldVisualize:   out.ShouldVisualize,
		Reason:            out.Reason,
		RecommendedGraphs: out.RecommendedGraphs,
	}, nil
}
