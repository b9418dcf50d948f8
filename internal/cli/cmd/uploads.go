package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/bnema/gamedesk/internal/application/usecase"
	"github.com/spf13/cobra"
)

var (
	uploadsUser int64
	uploadsJSON bool
)

var uploadsCmd = &cobra.Command{
	Use:   "uploads <game-id>",
	Short: "List the uploads of a game",
	Long: `Ask the background service for the uploads of a game, using the API key
of the given user (or of the most recently connected account) and any
download key they own for it.`,
	Args: cobra.ExactArgs(1),
	RunE: runUploads,
}

func init() {
	rootCmd.AddCommand(uploadsCmd)
	uploadsCmd.Flags().Int64Var(&uploadsUser, "user", 0, "user id whose credentials to use")
	uploadsCmd.Flags().BoolVar(&uploadsJSON, "json", false, "print uploads as JSON")
}

func runUploads(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx := app.Ctx()

	gameID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid game id %q", args[0])
	}
	game, err := app.Games.FindByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("find game: %w", err)
	}
	if game == nil {
		return fmt.Errorf("game %d is not in the library", gameID)
	}

	creds, err := app.Credentials(func() int64 { return uploadsUser }).GameCredentials(ctx, game)
	if err != nil {
		return err
	}
	if creds == nil || creds.APIKey == "" {
		return usecase.ErrNoCredentials
	}

	finder, err := app.UploadFinder(ctx)
	if err != nil {
		return fmt.Errorf("connect to butler: %w", err)
	}
	uploads, err := finder.FindUploads(ctx, game, *creds)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if uploadsJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(uploads)
	}

	t := app.Theme
	fmt.Fprintln(w, t.Title.Render(game.Title))
	if game.ShortText != "" {
		fmt.Fprintln(w, t.Subtitle.Render(game.ShortText))
	}
	if len(uploads) == 0 {
		fmt.Fprintln(w, t.Subtle.Render("No uploads."))
		return nil
	}
	fmt.Fprintln(w, t.RenderUploadsTable(uploads))
	return nil
}
