// Package cli provides the command-line interface for the parsing service.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"traderdesk/internal/agents"
	"traderdesk/internal/catalog"
	"traderdesk/internal/config"
	"traderdesk/internal/pipeline"
	"traderdesk/internal/store"
)

// Version information
const (
	Version = "2.0.0"
)

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Catalog  *catalog.Catalog
	Agent    *agents.ParserAgent
	Pipeline *pipeline.Pipeline
	Audit    store.AuditStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "traderdesk",
		Short: "Natural-language order and algo parsing service",
		Long: `Traderdesk converts free-form trading instructions into structured
order and algorithm-parameter records. Parsing uses an OpenAI-backed
path when an API key is configured and a deterministic rule-based
path otherwise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.initDependencies()
		},
	}

	rootCmd.AddCommand(newServeCmd(app))
	rootCmd.AddCommand(newParseCmd(app))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// initDependencies wires the catalog, LLM client, pipeline and audit
// store from configuration.
func (app *App) initDependencies() error {
	cat := catalog.New()
	if path := app.Config.Catalog.CSVPath; path != "" {
		loaded, err := catalog.NewFromCSV(path)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		cat = loaded
		app.Logger.Info().Str("path", path).Int("entries", cat.Len()).Msg("Catalog loaded from CSV")
	}
	app.Catalog = cat

	var llm agents.LLMClient
	if app.Config.LLMConfigured() {
		llm = agents.NewOpenAIClient(app.Config.Credentials.OpenAI)
		app.Logger.Info().Str("model", app.Config.Credentials.OpenAI.Model).Msg("OpenAI client initialized")
	} else {
		app.Logger.Info().Msg("OpenAI not configured, using rule-based parsing only")
	}
	app.Agent = agents.NewParserAgent(llm, cat, app.Logger)
	app.Pipeline = pipeline.New(app.Agent, app.Logger)

	if app.Config.Store.Enabled {
		auditStore, err := store.NewSQLiteStore(app.Config.Store.Path)
		if err != nil {
			return fmt.Errorf("opening audit store: %w", err)
		}
		app.Audit = auditStore
		app.Logger.Info().Str("path", app.Config.Store.Path).Msg("Audit store enabled")
	}

	return nil
}

// Close releases application resources.
func (app *App) Close() {
	if app.Audit != nil {
		if err := app.Audit.Close(); err != nil {
			app.Logger.Warn().Err(err).Msg("Closing audit store failed")
		}
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("traderdesk %s\n", Version)
		},
	}
}
