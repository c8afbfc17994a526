// parsfx — Iranian rial exchange-rate snapshot tool
//
// Fetches free-market quotes and the central-bank rate table, reconciles
// them into one record per tracked currency, marks each field's day-over-day
// change against the previous run, and emits the result as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/omidrezab/parsfx/internal/config"
	"github.com/omidrezab/parsfx/internal/pipeline"
	"github.com/omidrezab/parsfx/internal/source"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger
var (
	cfg *config.Config
	log *logrus.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "parsfx",
	Short: "parsfx — rial exchange-rate snapshot & day-over-day diff",
	Long: `parsfx fetches current rial exchange rates from the free-market API
and the central-bank rate table, merges them into one record per tracked
currency, and marks every field's change against the previous run.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Local .env first so PARSFX_* overrides are visible to viper.
		_ = godotenv.Load()

		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}
		log = newLogger(cfg.Logging)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(newsCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("parsfx %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Run Command ---

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch rates, diff against the previous snapshot, emit JSON",
	Long: `Fetch both sources, build the per-currency rate document, persist it
as the new snapshot, and print it to stdout. Exits non-zero if either
source fetch fails; in that case the previous snapshot is left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := pipeline.New(cfg, log).Run(cmd.Context())
		if err != nil {
			log.WithError(err).Error("pipeline failed")
			return err
		}

		out, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  parsfx — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:   %s (%s)\n", version, commit)
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    Symbols:      %v\n", cfg.Symbols)
		fmt.Printf("    Market URL:   %s\n", cfg.Market.URL)
		fmt.Printf("    Table URL:    %s\n", cfg.RateTable.URL)
		fmt.Printf("    Snapshot:     %s\n", cfg.Snapshot.Path)
		fmt.Println()

		fmt.Println("  API Keys:")
		keys := config.CheckAPIKeys(cfg)
		for _, k := range keys {
			status := "❌ not set"
			if k.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Printf("    %-20s %s\n", k.Name+":", status)
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

// --- News Command ---

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Print recent financial headlines",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		if limit == 0 {
			limit = cfg.News.Limit
		}

		headlines, err := source.NewNews(cfg.News.Feeds).Headlines(cmd.Context(), limit)
		if err != nil {
			return err
		}

		for _, h := range headlines {
			fmt.Printf("%s  [%s]\n    %s\n", h.Published.Format("2006-01-02 15:04"), h.Source, h.Title)
		}
		return nil
	},
}

func init() {
	newsCmd.Flags().Int("limit", 0, "maximum number of headlines (default from config)")
}

// newLogger builds the process logger from config.
func newLogger(cfg config.LoggingConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	switch cfg.Level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
