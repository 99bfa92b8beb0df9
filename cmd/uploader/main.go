package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"grantdocs/internal/client"
	"grantdocs/internal/config"
	"grantdocs/internal/logging"
	"grantdocs/internal/tui"
	"grantdocs/internal/wizard"
)

var (
	cfg *config.AppConfig

	// Global flags
	apiURL  string
	logFile string
	verbose bool

	logger  *zap.Logger
	logSink io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "uploader",
	Short: "Upload grant documents to the grantdocs API",
	Long: `uploader collects a document's details and files and posts them to the
grantdocs API in a single multipart request.

Run without arguments to start the interactive wizard:
  1. Document Details: title, fiscal year, source, grant type, remarks
  2. Upload Files: A4, Nepali, Extra and Other documents

Use "uploader submit" to upload from flags instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		// The wizard owns the terminal, so it only logs to a file.
		var w io.Writer = os.Stderr
		if cmd == cmd.Root() {
			w = io.Discard
		}
		if logFile != "" {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			w, logSink = f, f
		}
		logger = logging.NewWithWriter(w, level, cfg.Location())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		if logSink != nil {
			_ = logSink.Close()
		}
	},
	RunE: runWizard,
}

func init() {
	cfg = config.Load()

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", cfg.Uploader.APIURL, "base URL of the grantdocs API")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append JSON logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(lookupsCmd)
}

func newClient() *client.Client {
	return client.New(apiURL, client.WithLogger(logger))
}

// runWizard starts the interactive TUI.
func runWizard(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, machine := tui.NewProgram(ctx, newClient(),
		[]wizard.Option{wizard.WithResetDelay(cfg.Uploader.ResetDelay)},
		tea.WithAltScreen(), tea.WithContext(ctx),
	)
	defer machine.Close()

	logger.Info("wizard_started", zap.String("api_url", apiURL))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run wizard: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
