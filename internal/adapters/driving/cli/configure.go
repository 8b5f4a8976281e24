package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/config"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Interactive configuration wizard",
	Long: `Runs an interactive wizard to configure the wiki connection, the model
API key, and the optional mirror database. Values are written to the config
file; secrets may alternatively be supplied via INKWELL_* environment
variables.`,
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
}

func runConfigure(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Inkwell Configuration")
	cmd.Println("=====================")
	cmd.Println()

	cmd.Println("[Wiki]")
	promptString(cmd, reader, "Base URL (https://example.atlassian.net)", &cfg.Confluence.BaseURL)
	promptString(cmd, reader, "Account email", &cfg.Confluence.Email)
	promptSecret(cmd, "API token", &cfg.Confluence.APIToken)
	promptString(cmd, reader, "Space key", &cfg.Confluence.SpaceKey)
	promptString(cmd, reader, "Parent page ID for new pages", &cfg.Confluence.ParentID)
	cmd.Println()

	cmd.Println("[Model]")
	promptSecret(cmd, "API key", &cfg.Gemini.APIKey)
	promptString(cmd, reader, "Model (blank for default)", &cfg.Gemini.Model)
	cmd.Println()

	cmd.Println("[Mirror] (optional, leave blank to skip)")
	promptSecret(cmd, "Integration token", &cfg.Notion.APIKey)
	promptString(cmd, reader, "Database ID", &cfg.Notion.DatabaseID)
	promptString(cmd, reader, "Related page ID (optional)", &cfg.Notion.RelationID)
	cmd.Println()

	if err := config.Save(flagConfig, cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		cmd.Printf("Saved, but configuration is incomplete: %v\n", err)
		return nil
	}
	cmd.Println("Configuration saved.")
	return nil
}

// promptString asks for a value, keeping the current one when input is blank.
func promptString(cmd *cobra.Command, reader *bufio.Reader, label string, field *string) {
	if *field != "" {
		cmd.Printf("%s [%s]: ", label, *field)
	} else {
		cmd.Printf("%s: ", label)
	}
	input := readLine(reader)
	if input != "" {
		*field = input
	}
}

// promptSecret asks for a secret without echo, keeping the current value when
// input is blank.
func promptSecret(cmd *cobra.Command, label string, field *string) {
	if *field != "" {
		cmd.Printf("%s [%s]: ", label, maskSecret(*field))
	} else {
		cmd.Printf("%s: ", label)
	}
	input := readPassword()
	cmd.Println()
	if input != "" {
		*field = input
	}
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskSecret(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
