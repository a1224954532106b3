package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/RahulRR-10/EchoSQL/internal/cli/types"
	"github.com/RahulRR-10/EchoSQL/internal/cli/ui"
)

var (
	bookmarksSearchTerm string
	bookmarksAddTitle   string
)

// bookmarksCmd is the bookmarks command group
var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "list and manage saved questions",
	Long: `Save questions you ask often, search them, and remove the ones you no
longer need. The server keeps at most 50 bookmarks per user and evicts the
oldest when the cap is reached.`,
	Example: `  # List all bookmarks
  $ echoctl bookmarks

  # Search bookmarks
  $ echoctl bookmarks -q sales

  # Save a question
  $ echoctl bookmarks add "total sales by region" -t "Regional sales"

  # Delete a bookmark
  $ echoctl bookmarks delete <bookmark-id>`,
	RunE: runBookmarksList,
}

var bookmarksAddCmd = &cobra.Command{
	Use:   "add <question>",
	Short: "save a question",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarksAdd,
}

var bookmarksDeleteCmd = &cobra.Command{
	Use:   "delete <bookmark-id>",
	Short: "delete a saved question",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarksDelete,
}

func init() {
	bookmarksCmd.Flags().StringVarP(&bookmarksSearchTerm, "query", "q", "", "Filter bookmarks by search term")
	bookmarksAddCmd.Flags().StringVarP(&bookmarksAddTitle, "title", "t", "", "Bookmark title (defaults to the question)")

	bookmarksCmd.AddCommand(bookmarksAddCmd)
	bookmarksCmd.AddCommand(bookmarksDeleteCmd)

	bookmarksCmd.SilenceUsage = true
	bookmarksAddCmd.SilenceUsage = true
	bookmarksDeleteCmd.SilenceUsage = true
}

func runBookmarksList(cmd *cobra.Command, args []string) error {
	apiClient, _, err := authedClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bookmarks, err := apiClient.ListBookmarks(ctx, bookmarksSearchTerm)
	if err != nil {
		ui.PrintErrorBox("List Failed", err.Error())
		return fmt.Errorf("list failed")
	}

	fmt.Println(ui.RenderBookmarkList(bookmarks))
	return nil
}

func runBookmarksAdd(cmd *cobra.Command, args []string) error {
	apiClient, _, err := authedClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bookmark, err := apiClient.AddBookmark(ctx, &types.AddBookmarkRequest{
		Question: args[0],
		Title:    bookmarksAddTitle,
	})
	if err != nil {
		ui.PrintErrorBox("Add Failed", err.Error())
		return fmt.Errorf("add failed")
	}

	ui.PrintSuccess("Saved bookmark %s (%s)", bookmark.ID, bookmark.Title)
	return nil
}

func runBookmarksDelete(cmd *cobra.Command, args []string) error {
	apiClient, _, err := authedClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiClient.DeleteBookmark(ctx, args[0]); err != nil {
		ui.PrintErrorBox("Delete Failed", err.Error())
		return fmt.Errorf("delete failed")
	}

	ui.PrintSuccess("Bookmark %s deleted", args[0])
	return nil
}
