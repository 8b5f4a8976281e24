package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

var editCmd = &cobra.Command{
	Use:   "edit <page-url-or-id>",
	Short: "Edit a wiki page interactively with AI assistance",
	Long: `Starts an interactive edit session on a wiki page. The page is copied
to a staging draft; each instruction you type is applied to the draft, and
nothing touches the original until you commit.

Session commands:
  /show     print the current draft content
  /commit   write the draft back to the original page and finish
  /abandon  discard the session (the draft page is left behind)`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	if newEditor == nil {
		return errors.New("editor service not configured")
	}

	ctx := context.Background()
	session := newEditor()

	cmd.Printf("Loading page %s...\n", args[0])
	doc, err := session.Load(ctx, args[0])
	if err != nil {
		if errors.Is(err, domain.ErrInvalidReference) {
			return fmt.Errorf("not a page URL or numeric id: %q", args[0])
		}
		return fmt.Errorf("load failed: %w", err)
	}
	cmd.Printf("Editing %q (v%d). Type an instruction, or /commit, /abandon, /show.\n", doc.Title, doc.Version)

	reader := bufio.NewReader(os.Stdin)
	for {
		cmd.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			// EOF closes the session without committing.
			cmd.Println()
			return abandonSession(cmd, session)
		}
		line = strings.TrimSpace(line)

		switch line {
		case "":
			continue
		case "/show":
			cmd.Println(session.Content())
			continue
		case "/abandon":
			return abandonSession(cmd, session)
		case "/commit":
			url, err := session.Commit(ctx)
			if err != nil {
				if errors.Is(err, domain.ErrConflict) {
					cmd.Println("Commit rejected: the page changed while you were editing.")
					cmd.Println("Your draft is preserved; retry /commit to write over the new version.")
					continue
				}
				return fmt.Errorf("commit failed: %w", err)
			}
			cmd.Printf("Committed %d instruction(s).\n", len(session.Instructions()))
			cmd.Printf("Page: %s\n", url)
			return nil
		}

		cmd.Println("Applying...")
		if err := session.Apply(ctx, line); err != nil {
			if errors.Is(err, domain.ErrEmptyCompletion) {
				cmd.Printf("The model returned no usable content: %v\n", err)
				cmd.Println("The draft is unchanged; try rewording the instruction.")
				continue
			}
			// A failed staging write keeps the accepted rewrite in memory.
			cmd.Printf("Warning: %v\n", err)
			continue
		}
		cmd.Println("Done. Next instruction, or /commit when satisfied.")
	}
}

func abandonSession(cmd *cobra.Command, session interface{ Abandon() error }) error {
	if err := session.Abandon(); err != nil {
		return fmt.Errorf("abandon failed: %w", err)
	}
	cmd.Println("Session abandoned. The original page is untouched.")
	return nil
}
