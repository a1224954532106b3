package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/RahulRR-10/EchoSQL/internal/cli/client"
	"github.com/RahulRR-10/EchoSQL/internal/cli/config"
	"github.com/RahulRR-10/EchoSQL/internal/cli/types"
	"github.com/RahulRR-10/EchoSQL/internal/cli/ui"
)

var (
	askSessionID  string
	askDatabaseID string
	askNewSession bool
)

// askCmd is the ask command
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "ask a natural-language question against your database",
	Long: `Ask a natural-language question. The question is sent to the query agent,
translated to SQL or Cypher, executed, and the result is printed as a table.

Questions run inside a session. The first ask creates one automatically and
remembers it in ~/.echoctl/config.json; pass --new to start a fresh session
or --session to target a specific one.

Without a question argument, opens an interactive prompt loop.`,
	Example: `  # One-shot question in the active session
  $ echoctl ask "total sales by region last quarter"

  # Start a new session with a specific database profile
  $ echoctl ask --new --database <profile-id> "list all customers"

  # Interactive mode
  $ echoctl ask`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askSessionID, "session", "", "Session ID to ask in (defaults to the active session)")
	askCmd.Flags().StringVarP(&askDatabaseID, "database", "d", "", "Database profile ID (defaults to the session's profile)")
	askCmd.Flags().BoolVar(&askNewSession, "new", false, "Start a new session")

	askCmd.SilenceUsage = true
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return fmt.Errorf("config load failed")
	}
	if !cfg.IsAuthenticated() {
		ui.PrintError("not logged in, run 'echoctl login' first")
		return fmt.Errorf("not authenticated")
	}

	apiClient, err := client.NewAPIClient(cfg.Server, cfg.AccessToken)
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	databaseID := askDatabaseID
	if databaseID == "" {
		databaseID = cfg.DatabaseID
	}

	// Resolve the session: flag, saved active session, or a fresh one.
	sessionID := askSessionID
	if sessionID == "" && !askNewSession {
		sessionID = cfg.SessionID
	}
	if sessionID == "" {
		session, err := apiClient.CreateSession(context.Background(), "", databaseID)
		if err != nil {
			ui.PrintErrorBox("Session Creation Failed", err.Error())
			return fmt.Errorf("session creation failed")
		}
		sessionID = session.ID
		cfg.SessionID = sessionID
		if err := cfg.Save(); err != nil {
			ui.PrintWarning("failed to save active session: %v", err)
		}
		ui.PrintInfo("Started session %s", sessionID)
	}

	// One-shot mode
	if len(args) > 0 {
		return askOnce(apiClient, sessionID, databaseID, args[0])
	}

	// Interactive mode
	ui.ClearScreen()
	ui.PrintWelcomeBanner()
	ui.PrintInfo("Type a question, or 'exit' to quit.")
	fmt.Println()

	for {
		var question string
		prompt := &survey.Input{Message: "?"}
		if err := survey.AskOne(prompt, &question); err != nil {
			return nil // Ctrl+C
		}

		question = strings.TrimSpace(question)
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			return nil
		}

		if err := askOnce(apiClient, sessionID, databaseID, question); err != nil {
			continue // error already printed, keep the loop alive
		}
		fmt.Println()
	}
}

func askOnce(apiClient *client.APIClient, sessionID, databaseID, question string) error {
	// Agent calls can be slow: translation plus query execution
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	message, err := apiClient.Ask(ctx, &types.AskRequest{
		SessionID:  sessionID,
		DatabaseID: databaseID,
		Question:   question,
	})
	if err != nil {
		ui.PrintErrorBox("Ask Failed", err.Error())
		return fmt.Errorf("ask failed")
	}

	fmt.Println(ui.RenderAnswer(message))
	return nil
}
