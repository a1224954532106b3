package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/RahulRR-10/EchoSQL/internal/cli/client"
	"github.com/RahulRR-10/EchoSQL/internal/cli/config"
	"github.com/RahulRR-10/EchoSQL/internal/cli/ui"
)

var (
	sessionsExportOutput string
	sessionsDeleteYes    bool
)

// sessionsCmd is the sessions command group
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "list and manage query sessions",
	Long: `List your query sessions, show a session transcript, switch the active
session, export a transcript to PDF, or delete a session.`,
	Example: `  # List sessions (active session marked with *)
  $ echoctl sessions

  # Show a session transcript
  $ echoctl sessions show <session-id>

  # Switch the active session for ask
  $ echoctl sessions use <session-id>

  # Export a transcript to PDF
  $ echoctl sessions export <session-id> -o report.pdf

  # Delete a session
  $ echoctl sessions delete <session-id>`,
	RunE: runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "show a session transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

var sessionsUseCmd = &cobra.Command{
	Use:   "use <session-id>",
	Short: "set the active session for ask",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsUse,
}

var sessionsExportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "export a session transcript to PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsExport,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "delete a session and its messages",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func init() {
	sessionsExportCmd.Flags().StringVarP(&sessionsExportOutput, "output", "o", "", "Output file path (defaults to session-<id>.pdf)")
	sessionsDeleteCmd.Flags().BoolVarP(&sessionsDeleteYes, "yes", "y", false, "Skip confirmation prompt")

	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsUseCmd)
	sessionsCmd.AddCommand(sessionsExportCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)

	sessionsCmd.SilenceUsage = true
	sessionsShowCmd.SilenceUsage = true
	sessionsUseCmd.SilenceUsage = true
	sessionsExportCmd.SilenceUsage = true
	sessionsDeleteCmd.SilenceUsage = true
}

// authedClient loads the CLI config and builds an authenticated client.
func authedClient() (*client.APIClient, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return nil, nil, fmt.Errorf("config load failed")
	}
	if !cfg.IsAuthenticated() {
		ui.PrintError("not logged in, run 'echoctl login' first")
		return nil, nil, fmt.Errorf("not authenticated")
	}

	apiClient, err := client.NewAPIClient(cfg.Server, cfg.AccessToken)
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return nil, nil, fmt.Errorf("client creation failed")
	}
	return apiClient, cfg, nil
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	apiClient, cfg, err := authedClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sessions, total, err := apiClient.ListSessions(ctx)
	if err != nil {
		ui.PrintErrorBox("List Failed", err.Error())
		return fmt.Errorf("list failed")
	}

	fmt.Println(ui.RenderSessionList(sessions, cfg.SessionID))
	fmt.Println(ui.RenderSessionSummary(total))
	return nil
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	apiClient, _, err := authedClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	messages, err := apiClient.ListMessages(ctx, args[0])
	if err != nil {
		ui.PrintErrorBox("Show Failed", err.Error())
		return fmt.Errorf("show failed")
	}

	if len(messages) == 0 {
		ui.PrintInfo("Session has no messages yet")
		return nil
	}

	for i := range messages {
		m := &messages[i]
		ui.PrintBold("? %s", m.Question)
		fmt.Println(ui.RenderAnswer(m))
		fmt.Println()
	}
	return nil
}

func runSessionsUse(cmd *cobra.Command, args []string) error {
	_, cfg, err := authedClient()
	if err != nil {
		return err
	}

	cfg.SessionID = args[0]
	if err := cfg.Save(); err != nil {
		ui.PrintError("failed to save config: %v", err)
		return fmt.Errorf("config save failed")
	}

	ui.PrintSuccess("Active session set to %s", args[0])
	return nil
}

func runSessionsExport(cmd *cobra.Command, args []string) error {
	apiClient, _, err := authedClient()
	if err != nil {
		return err
	}

	// PDF rendering goes through the external converter; allow it time
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sessionID := args[0]
	ui.PrintInfo("Exporting session %s...", sessionID)

	pdf, err := apiClient.ExportSessionPDF(ctx, sessionID)
	if err != nil {
		ui.PrintErrorBox("Export Failed", err.Error())
		return fmt.Errorf("export failed")
	}

	output := sessionsExportOutput
	if output == "" {
		output = fmt.Sprintf("session-%s.pdf", sessionID)
	}

	if err := os.WriteFile(output, pdf, 0644); err != nil {
		ui.PrintError("failed to write %s: %v", output, err)
		return fmt.Errorf("write failed")
	}

	ui.PrintSuccess("Wrote %s (%d bytes)", output, len(pdf))
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	apiClient, cfg, err := authedClient()
	if err != nil {
		return err
	}

	sessionID := args[0]

	if !sessionsDeleteYes {
		confirmed := false
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Delete session %s and all its messages?", sessionID),
		}
		if err := survey.AskOne(prompt, &confirmed); err != nil || !confirmed {
			ui.PrintInfo("Aborted")
			return nil
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiClient.DeleteSession(ctx, sessionID); err != nil {
		ui.PrintErrorBox("Delete Failed", err.Error())
		return fmt.Errorf("delete failed")
	}

	// Forget the active session if it was just deleted
	if cfg.SessionID == sessionID {
		cfg.SessionID = ""
		if err := cfg.Save(); err != nil {
			ui.PrintWarning("failed to save config: %v", err)
		}
	}

	ui.PrintSuccess("Session %s deleted", sessionID)
	return nil
}
