package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

var (
	flagNewTitle       string
	flagNewInstruction string
	flagNewFile        string
	flagNewMirror      bool
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new wiki page from raw content",
	Long: `Rewrites raw content into wiki storage format and creates a page under
the configured parent. Content is read from --file, or from stdin when no
file is given.`,
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVarP(&flagNewTitle, "title", "t", "", "page title (required)")
	newCmd.Flags().StringVarP(&flagNewInstruction, "instruction", "i", "", "formatting instruction for the model")
	newCmd.Flags().StringVarP(&flagNewFile, "file", "f", "", "read raw content from file instead of stdin")
	newCmd.Flags().BoolVar(&flagNewMirror, "mirror", false, "also publish a copy to the mirror database")
	_ = newCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, _ []string) error {
	if composerService == nil {
		return errors.New("composer service not configured")
	}

	raw, err := readContent(flagNewFile)
	if err != nil {
		return err
	}
	if raw == "" {
		return errors.New("no content provided")
	}

	ctx := context.Background()

	cmd.Println("Generating document...")
	content, err := composerService.Generate(ctx, flagNewInstruction, raw)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	cmd.Println("Uploading...")
	url, err := composerService.Upload(ctx, flagNewTitle, content)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	cmd.Printf("Created page: %s\n", url)

	if flagNewMirror {
		mirrorURL, err := composerService.Mirror(ctx, flagNewTitle, content, url)
		if err != nil {
			if errors.Is(err, domain.ErrMirrorNotConfigured) {
				cmd.Println("Mirror skipped: no mirror credentials configured.")
				return nil
			}
			// The wiki page exists; a mirror failure is not fatal.
			cmd.Printf("Warning: mirror failed: %v\n", err)
			return nil
		}
		cmd.Printf("Mirrored to: %s\n", mirrorURL)
	}
	return nil
}

// readContent reads the raw document from path, or stdin when path is empty.
func readContent(path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading content file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
