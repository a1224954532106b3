//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/network/netpoll"

	"github.com/RahulRR-10/EchoSQL/internal/config"
	"github.com/RahulRR-10/EchoSQL/internal/handler"
	"github.com/RahulRR-10/EchoSQL/internal/infrastructure/agent"
	infradb "github.com/RahulRR-10/EchoSQL/internal/infrastructure/database"
	"github.com/RahulRR-10/EchoSQL/internal/router"
	"github.com/RahulRR-10/EchoSQL/internal/usecase"
	dbpkg "github.com/RahulRR-10/EchoSQL/pkg/database"
)

// TestAPIHTTP runs the register/login/profile/session/ask/visualize flow
// over real HTTP against a real MySQL. The agent service is stubbed with
// a local httptest server.
// Run with: go test -tags integration ./test/integration/...
// Requires: MySQL (localhost:3306)
func TestAPIHTTP(t *testing.T) {
	// Stub agent: answers every /chat with a fixed two-column result
	agentStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"sql_query": "SELECT region, sales FROM t",
			"sql_result": [{"region":"north","sales":100},{"region":"south","sales":60}],
			"summary": "Two regions returned.",
			"title": "Sales by region",
			"database_type": "mysql"
		}`)
	}))
	defer agentStub.Close()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:               "127.0.0.1",
			Port:               18080,
			Mode:               "debug",
			ReadTimeout:        30 * time.Second,
			WriteTimeout:       30 * time.Second,
			MaxRequestBodySize: 4,
		},
		JWT: config.JWTConfig{
			Secret: "integration-test-secret-0123456789ab",
		},
		Agent: config.AgentConfig{
			BaseURL: agentStub.URL,
			Timeout: 30 * time.Second,
		},
		Database: config.DatabaseConfig{
			Driver:          "mysql",
			Host:            getEnvOrDefault("DB_HOST", "127.0.0.1"),
			Port:            3306,
			User:            getEnvOrDefault("DB_USER", "echosql"),
			Password:        getEnvOrDefault("DB_PASSWORD", "echosql"),
			Database:        getEnvOrDefault("DB_NAME", "echosql_test"),
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	dbClient, err := dbpkg.NewClient(cfg.Database, logger)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	defer dbClient.Close()

	if err := infradb.Migrate(context.Background(), dbClient); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	// Wire the server the same way main does
	userRepo := infradb.NewUserRepository(dbClient)
	sessionRepo := infradb.NewSessionRepository(dbClient)
	messageRepo := infradb.NewMessageRepository(dbClient)
	profileRepo := infradb.NewProfileRepository(dbClient)
	bookmarkRepo := infradb.NewBookmarkRepository(dbClient)

	agentClient, err := agent.NewClient(cfg.Agent.BaseURL, cfg.Agent.Timeout, logger)
	if err != nil {
		t.Fatalf("failed to create agent client: %v", err)
	}

	userUC := usecase.NewUserUsecase(userRepo, logger)
	sessionUC := usecase.NewSessionUsecase(sessionRepo, messageRepo, logger)
	messageUC := usecase.NewMessageUsecase(sessionRepo, messageRepo, profileRepo, agentClient, logger)
	databaseUC := usecase.NewDatabaseUsecase(profileRepo, logger)
	bookmarkUC := usecase.NewBookmarkUsecase(bookmarkRepo, logger)
	vizUC := usecase.NewVisualizationUsecase(messageUC, nil, logger)
	exportUC := usecase.NewExportUsecase(sessionUC, messageUC, nil, logger)

	h := server.New(
		server.WithHostPorts(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)),
		server.WithTransport(netpoll.NewTransporter),
	)

	router.Setup(h,
		handler.NewUserHandler(userUC, cfg.JWT.Secret, logger),
		handler.NewSessionHandler(sessionUC, messageUC, exportUC, logger),
		handler.NewMessageHandler(messageUC, logger),
		handler.NewDatabaseHandler(databaseUC, logger),
		handler.NewBookmarkHandler(bookmarkUC, logger),
		handler.NewVisualizationHandler(vizUC, logger),
		handler.NewWhatsAppHandler(agentClient, profileRepo, cfg.WhatsApp, logger),
		handler.NewHealthHandler(dbClient),
	)

	go func() {
		if err := h.Run(); err != nil {
			logger.Error("server failed", "error", err)
		}
	}()

	time.Sleep(2 * time.Second)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		h.Shutdown(ctx)
	}()

	baseURL := fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	client := &http.Client{Timeout: 60 * time.Second}
	username := fmt.Sprintf("it-user-%d", time.Now().UnixNano())

	// Register + login
	postJSON(t, client, baseURL+"/api/v1/auth/register", "", map[string]string{
		"username": username,
		"password": "secret-password",
	})

	loginBody := postJSON(t, client, baseURL+"/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": "secret-password",
	})
	var loginResp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(loginBody, &loginResp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	token := loginResp.Data.Token
	if token == "" {
		t.Fatal("expected a JWT token from login")
	}

	// Create a database profile
	profileBody := postJSON(t, client, baseURL+"/api/v1/databases", token, map[string]any{
		"name":     "test-db",
		"type":     "mysql",
		"host":     "localhost",
		"port":     3306,
		"database": "sales",
	})
	profileID := dataField(t, profileBody, "id")

	// Create a session bound to that profile
	sessionBody := postJSON(t, client, baseURL+"/api/v1/sessions", token, map[string]string{
		"database_id": profileID,
	})
	sessionID := dataField(t, sessionBody, "id")

	// Ask a question through the stub agent
	askBody := postJSON(t, client, baseURL+"/api/v1/messages", token, map[string]string{
		"session_id": sessionID,
		"question":   "total sales by region",
	})
	var askResp struct {
		Data struct {
			ID     string           `json:"id"`
			Query  string           `json:"query"`
			Result []map[string]any `json:"result"`
			Error  string           `json:"error"`
		} `json:"data"`
	}
	if err := json.Unmarshal(askBody, &askResp); err != nil {
		t.Fatalf("failed to decode ask response: %v", err)
	}
	if askResp.Data.Error != "" {
		t.Fatalf("unexpected agent error: %s", askResp.Data.Error)
	}
	if askResp.Data.Query != "SELECT region, sales FROM t" {
		t.Errorf("unexpected query: %q", askResp.Data.Query)
	}
	if len(askResp.Data.Result) != 2 {
		t.Fatalf("expected 2 result rows, got %d", len(askResp.Data.Result))
	}

	// Visualize the stored exchange: no recommender configured, so the
	// default cascade should pick a bar chart
	vizBody := postJSON(t, client, baseURL+"/api/v1/messages/"+askResp.Data.ID+"/visualize", token, nil)
	var vizResp struct {
		Data struct {
			CanVisualize bool `json:"can_visualize"`
			Charts       []struct {
				Type string `json:"type"`
				SVG  string `json:"svg"`
			} `json:"charts"`
		} `json:"data"`
	}
	if err := json.Unmarshal(vizBody, &vizResp); err != nil {
		t.Fatalf("failed to decode visualization response: %v", err)
	}
	if !vizResp.Data.CanVisualize {
		t.Fatal("expected a visualizable result")
	}
	if len(vizResp.Data.Charts) != 1 || vizResp.Data.Charts[0].Type != "bar" {
		t.Fatalf("expected one bar chart, got %+v", vizResp.Data.Charts)
	}
	if vizResp.Data.Charts[0].SVG == "" {
		t.Error("expected a non-empty SVG document")
	}

	// Session transcript includes the exchange
	transcript := getJSON(t, client, baseURL+"/api/v1/sessions/"+sessionID+"/messages", token)
	var listResp struct {
		Data struct {
			TotalCount int `json:"totalCount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(transcript, &listResp); err != nil {
		t.Fatalf("failed to decode transcript: %v", err)
	}
	if listResp.Data.TotalCount != 1 {
		t.Errorf("expected 1 message in transcript, got %d", listResp.Data.TotalCount)
	}
}

// postJSON sends an authenticated POST and fails the test on a non-2xx.
func postJSON(t *testing.T, client *http.Client, url, token string, body any) []byte {
	t.Helper()

	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest("POST", url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		t.Fatalf("POST %s: status %d, body: %s", url, resp.StatusCode, string(respBody))
	}
	return respBody
}

// getJSON sends an authenticated GET and fails the test on a non-2xx.
func getJSON(t *testing.T, client *http.Client, url, token string) []byte {
	t.Helper()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d, body: %s", url, resp.StatusCode, string(respBody))
	}
	return respBody
}

// dataField extracts data.<field> from an envelope response.
func dataField(t *testing.T, body []byte, field string) string {
	t.Helper()

	var resp struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	val, _ := resp.Data[field].(string)
	if val == "" {
		t.Fatalf("expected data.%s in response, body: %s", field, string(body))
	}
	return val
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
