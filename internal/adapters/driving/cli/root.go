// Package cli provides the command-line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/config"
	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/storage/memory"
	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/storage/sqlite"
	"github.com/inkwell-labs/inkwell-cli/internal/connectors/confluence"
	"github.com/inkwell-labs/inkwell-cli/internal/connectors/gemini"
	"github.com/inkwell-labs/inkwell-cli/internal/connectors/notion"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/inkwell-cli/internal/core/services"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services wired by initServices. Tests swap these for mocks.
var (
	composerService driving.ComposerService
	notesService    driving.NotesService
	historyStore    driven.HistoryStore

	// newEditor builds a fresh edit session; each `edit` invocation gets
	// its own.
	newEditor func() driving.EditorService
)

var (
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "AI-assisted wiki documentation editing",
	Long: `Inkwell edits, creates, and publishes wiki documentation with AI
assistance. Edits happen on a staging copy and are committed back to the
original page only when you are satisfied.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		if configOnly(cmd) {
			return nil
		}
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default ~/.inkwell/config.toml)")
}

// Execute runs the root command. Services are wired lazily in the
// persistent pre-run hook, after cobra has resolved the target command.
func Execute() {
	err := rootCmd.Execute()
	// The ledger is closed on the error path too; exiting must not skip it.
	closeHistory()
	if err != nil {
		os.Exit(1)
	}
}

func closeHistory() {
	if historyStore != nil {
		_ = historyStore.Close()
	}
}

// configOnly reports whether cmd runs without wired connectors. Resolved on
// the cobra command so flag placement and help requests cannot change the
// decision.
func configOnly(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "version", "configure", "help", "completion":
			return true
		}
	}
	// Bare invocation prints usage.
	return cmd == cmd.Root()
}

func initServices() error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := confluence.NewClient(confluence.Config{
		BaseURL:  cfg.Confluence.BaseURL,
		Email:    cfg.Confluence.Email,
		APIToken: cfg.Confluence.APIToken,
		SpaceKey: cfg.Confluence.SpaceKey,
		ParentID: cfg.Confluence.ParentID,
	})
	if err != nil {
		return err
	}

	rewriter, err := gemini.NewClient(gemini.Config{
		APIKey: cfg.Gemini.APIKey,
		Model:  cfg.Gemini.Model,
	})
	if err != nil {
		return err
	}

	// Mirror is optional; commands degrade gracefully without it.
	var mirror driven.MirrorPublisher
	if cfg.MirrorConfigured() {
		mirror, err = notion.NewPublisher(notion.Config{
			APIKey:     cfg.Notion.APIKey,
			DatabaseID: cfg.Notion.DatabaseID,
			RelationID: cfg.Notion.RelationID,
		})
		if err != nil {
			return err
		}
	}

	if cfg.History.DataDir == "off" {
		historyStore = memory.NewHistoryStore()
	} else {
		historyStore, err = sqlite.NewHistoryStore(cfg.History.DataDir)
		if err != nil {
			logger.Warn("history ledger unavailable, falling back to in-memory: %v", err)
			historyStore = memory.NewHistoryStore()
		}
	}

	composerService = services.NewComposerService(store, rewriter, mirror, historyStore)
	notesService = services.NewNotesService(store, rewriter, mirror, historyStore)
	newEditor = func() driving.EditorService {
		return services.NewEditorService(store, rewriter, historyStore)
	}
	return nil
}
