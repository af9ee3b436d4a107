package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/bookarr/config"
	"github.com/s0up4200/bookarr/filter"
	"github.com/s0up4200/bookarr/goodreads"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *goodreads.Client
	filters *filter.Manager

	// Command flags shared by the listing commands
	filterExpr string
	preset     string
	limit      int
	page       int
	jsonOutput bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bookarr",
	Short: "A command line client for the Goodreads API",
	Long: `bookarr talks to the Goodreads API: look up books and authors, walk
shelves and author catalogues page by page, filter the results with expressions
and manage your own shelves through an OAuth session.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print the normalized response as JSON")
}

// initializeApp loads the configuration and builds the client and filters
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	client, err = goodreads.NewClient(
		cfg.Goodreads.DeveloperKey,
		cfg.Goodreads.DeveloperSecret,
		logger,
		goodreads.WithBaseURL(cfg.Goodreads.URL),
		goodreads.WithTimeout(cfg.Goodreads.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create Goodreads client: %w", err)
	}

	if !client.HasDeveloperCredentials() {
		logger.Warn().Msg("No developer key configured, only session-free operations will work")
	}

	filters = filter.NewManager()
	if err := filters.RegisterAll(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}
	logger.Debug().Strs("presets", filters.Names()).Msg("Filter presets loaded")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	fd := os.Stderr.Fd()
	color := cfg.Color && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// userSession builds a session from the stored access token pair
func userSession() (*goodreads.Session, error) {
	if !cfg.Goodreads.HasSession() {
		return nil, fmt.Errorf("no access token configured. Run 'bookarr auth login' and set goodreads.access_token and goodreads.access_secret")
	}
	return client.NewSession(cfg.Goodreads.AccessToken, cfg.Goodreads.AccessSecret)
}

// skipInitialization replaces initializeApp for commands that need no config
func skipInitialization(cmd *cobra.Command, args []string) error {
	logger = setupLogger(config.LoggingConfig{Level: "info", Color: true})
	return nil
}
