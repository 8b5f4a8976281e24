package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/notes"
)

var (
	flagDailyFile     string
	flagDailyRaw      bool
	flagDailyMirror   bool
	flagDailyTitleArg string
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Publish daily meeting notes as a team table",
	Long: `Parses free-form meeting notes into per-team sections, optionally tidies
them with the model, renders a team/doing table, and uploads it as today's
notes page (updating the page if it already exists).

Notes are read from --file, or from stdin when no file is given. Section
headers start with ### (for example "### Engine").`,
	RunE: runDaily,
}

func init() {
	dailyCmd.Flags().StringVarP(&flagDailyFile, "file", "f", "", "read notes from file instead of stdin")
	dailyCmd.Flags().BoolVar(&flagDailyRaw, "raw", false, "skip model optimization, publish notes as written")
	dailyCmd.Flags().BoolVar(&flagDailyMirror, "mirror", false, "also publish a copy to the mirror database")
	dailyCmd.Flags().StringVar(&flagDailyTitleArg, "title", "", "override the default YY/MM/DD page title")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, _ []string) error {
	if notesService == nil {
		return errors.New("notes service not configured")
	}

	raw, err := readContent(flagDailyFile)
	if err != nil {
		return err
	}
	sections := notes.Parse(raw)

	ctx := context.Background()

	if !flagDailyRaw {
		cmd.Println("Optimizing notes...")
		optimised, err := notesService.Optimize(ctx, sections)
		if err != nil {
			if errors.Is(err, domain.ErrUnparsableReply) {
				// Publishing the raw notes beats failing the whole run.
				cmd.Println("Model reply was not usable; publishing notes as written.")
			} else {
				return fmt.Errorf("optimize failed: %w", err)
			}
		} else {
			sections = optimised
		}
	}

	title := flagDailyTitleArg
	if title == "" {
		title = notes.DailyTitle(time.Now())
	}
	content := notes.RenderTable(sections)

	cmd.Println("Uploading...")
	url, updated, err := notesService.Upload(ctx, title, content)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	if updated {
		cmd.Printf("Updated existing notes page: %s\n", url)
	} else {
		cmd.Printf("Created notes page: %s\n", url)
	}

	if flagDailyMirror {
		mirrorURL, err := notesService.Mirror(ctx, title, content, url)
		if err != nil {
			if errors.Is(err, domain.ErrMirrorNotConfigured) {
				cmd.Println("Mirror skipped: no mirror credentials configured.")
				return nil
			}
			cmd.Printf("Warning: mirror failed: %v\n", err)
			return nil
		}
		cmd.Printf("Mirrored to: %s\n", mirrorURL)
	}
	return nil
}
