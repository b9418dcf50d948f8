package cmd

import (
	"fmt"

	"github.com/bnema/gamedesk/internal/application/usecase"
	"github.com/bnema/gamedesk/internal/cli/model"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	libraryQuery       string
	libraryCompatible  bool
	libraryPlatform    string
	librarySort        string
	libraryDescending  bool
	libraryInteractive bool
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "List the game library",
	Long: `List known games with their play time, last played and publication dates.

Sort keys: title, playtime, last-played, published.

Examples:
  gamedesk library
  gamedesk library --sort playtime --desc
  gamedesk library --compatible -q celeste
  gamedesk library -i`,
	RunE: runLibrary,
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	f := libraryCmd.Flags()
	f.StringVarP(&libraryQuery, "query", "q", "", "filter titles (case-insensitive)")
	f.BoolVar(&libraryCompatible, "compatible", false, "only games with a build for the platform")
	f.StringVar(&libraryPlatform, "platform", "", "platform for --compatible: linux, windows or darwin")
	f.StringVar(&librarySort, "sort", string(usecase.SortByTitle), "sort key")
	f.BoolVar(&libraryDescending, "desc", false, "sort descending")
	f.BoolVarP(&libraryInteractive, "interactive", "i", false, "browse the library in a table")
}

func runLibrary(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	sortBy, err := usecase.ParseLibrarySort(librarySort)
	if err != nil {
		return err
	}
	input := usecase.ListLibraryInput{
		Query:          libraryQuery,
		OnlyCompatible: libraryCompatible,
		Platform:       libraryPlatform,
		SortBy:         sortBy,
		Descending:     libraryDescending,
	}

	if libraryInteractive {
		m := model.NewLibraryModel(app.Ctx(), app.Theme, app.Library, input)
		final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
		if err != nil {
			return fmt.Errorf("library: %w", err)
		}
		if lm, ok := final.(model.LibraryModel); ok && lm.Selected != nil {
			fmt.Fprintln(cmd.OutOrStdout(), lm.Selected.Record.Game.URL)
		}
		return nil
	}

	out, err := app.Library.Execute(app.Ctx(), input)
	if err != nil {
		return err
	}

	t := app.Theme
	w := cmd.OutOrStdout()
	if len(out.Rows) == 0 {
		fmt.Fprintln(w, t.Subtle.Render("No games match."))
	} else {
		fmt.Fprintln(w, t.RenderLibraryTable(out.Rows))
	}
	if out.HiddenCount > 0 {
		fmt.Fprintln(w, t.Subtle.Render(fmt.Sprintf("%d games hidden by filters", out.HiddenCount)))
	}
	return nil
}
