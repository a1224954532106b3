package agent

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
	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
	"github.com/RahulRR-10/EchoSQL/internal/viz"
)

// Wire format of the query agent service.
type chatRequest struct {
	QueryRequest   string         `json:"query_request"`
	DatabaseConfig databaseConfig `json:"database_config"`
}

type databaseConfig struct {
	DBType   string `json:"dbType"`
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	User     string `json:"user,omitempty"`
	Password string `json:"password,omitempty"`
	Database string `json:"database,omitempty"`
	URI      string `json:"uri,omitempty"`
}

type chatResponse struct {
	SQLQuery            string    `json:"sql_query"`
	CypherQuery         string    `json:"cypher_query"`
	SQLResult           viz.Table `json:"sql_result"`
	GraphResult         viz.Table `json:"graph_result"`
	Summary             string    `json:"summary"`
	Title               string    `json:"title"`
	AgentThoughtProcess string    `json:"agent_thought_process"`
	DatabaseType        string    `json:"database_type"`
	Error               string    `json:"error"`
	Details             string    `json:"details"`
}

// client is the HTTP implementation of AgentClient.
type client struct {
	http    *hzclient.Client
	baseURL string
	timeout time.Duration
	logger  *slog.Logger
}

// NewClient creates the query agent client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (domain.AgentClient, error) {
	c, err := hzclient.NewClient(
		hzclient.WithDialTimeout(10 * time.Second),
		hzclient.WithMaxIdleConnDuration(60 * time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent client: %w", err)
	}

	logger.Info("agent client created", "base_url", baseURL, "timeout", timeout)

	return &client{
		http:    c,
		baseURL: baseURL,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Ask forwards one natural-language question to the agent.
func (c *client) Ask(ctx context.Context, question string, profile *entity.DatabaseProfile) (*domain.AgentAnswer, error) {
	reqBody := chatRequest{
		QueryRequest: question,
		DatabaseConfig: databaseConfig{
			DBType:   profile.Type,
			Host:     profile.Host,
			Port:     profile.Port,
			User:     profile.Username,
			Password: profile.Password,
			Database: profile.Database,
			URI:      profile.URI,
		},
	}
	bodyBytes, err := sonic.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal agent request: %w", err)
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
	req.SetRequestURI(c.baseURL + "/chat")
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.SetBody(bodyBytes)

	if err := c.http.Do(ctx, req, resp); err != nil {
		return nil, domain.NewUnavailableError("agent", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, domain.NewUnavailableError("agent",
			fmt.Errorf("agent returned HTTP %d: %s", resp.StatusCode(), resp.Body()))
	}

	var out chatResponse
	if err := sonic.Unmarshal(resp.Body(), &out); err != nil {
		return nil, domain.NewUnavailableError("agent",
			fmt.Errorf("failed to unmarshal agent response: %w", err))
	}

	answer := &domain.AgentAnswer{
		Summary:        out.Summary,
		Title:          out.Title,
		ThoughtProcess: out.AgentThoughtProcess,
		DatabaseType:   out.DatabaseType,
	}

	if out.Error != "" {
		answer.ErrorMessage = out.Error
		if out.Details != "" {
			answer.ErrorMessage = fmt.Sprintf("%s: %s", out.Error, out.Details)
		}
		return answer, nil
	}

	// Relational agents fill sql_query/sql_result, graph agents the cypher
	// pair.
	if out.CypherQuery != "" {
		answer.Query = out.CypherQuery
		answer.QueryType = entity.QueryTypeCypher
		answer.Result = out.GraphResult
	} else {
		answer.Query = out.SQLQuery
		answer.QueryType = entity.QueryTypeSQL
		answer.Result = out.SQLResult
	}

	c.logger.Debug("agent answered",
		"query_type", answer.QueryType,
		"rows", len(answer.Result.Rows),
	)
	return answer, nil
}
