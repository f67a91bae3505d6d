// Package cmd implements the caller-facing trigger surface of the review
// pipeline as cobra commands.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reviewkit/reviewkit/ai"
	"github.com/reviewkit/reviewkit/analysis"
	"github.com/reviewkit/reviewkit/internal/db"
	"github.com/reviewkit/reviewkit/linters/pylint"
	"github.com/reviewkit/reviewkit/models"
	"github.com/reviewkit/reviewkit/review"
)

var (
	cfgFile string
	dbDir   string
)

var rootCmd = &cobra.Command{
	Use:   "reviewkit",
	Short: "AI-assisted code review pipeline",
	Long: `reviewkit ingests source-code submissions, runs static analyzers
(syntax, complexity, security heuristics, pylint) plus an external
language-model review, and stores a merged, severity-tagged quality report
per submission.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.reviewkit.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbDir, "db-dir", "", "database directory (default is $HOME/.cache/reviewkit)")

	logger.BindFlags(rootCmd.PersistentFlags())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".reviewkit")
	}

	viper.SetEnvPrefix("REVIEWKIT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}
}

// loadConfig merges file config with environment overrides.
func loadConfig() (*models.Config, error) {
	path := viper.ConfigFileUsed()
	if path == "" && cfgFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".reviewkit.yaml")
		}
	} else if cfgFile != "" {
		path = cfgFile
	}

	cfg, err := models.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if key := viper.GetString("ai.api_key"); key != "" {
		cfg.AI.APIKey = key
	}
	if dbDir != "" {
		cfg.DB.Dir = dbDir
	}

	return cfg, nil
}

// pipeline bundles the wired collaborators behind one handle for commands.
type pipeline struct {
	config     *models.Config
	store      *db.Store
	controller *review.Controller
}

func (p *pipeline) Close() {
	if err := p.store.Close(); err != nil {
		logger.Warnf("failed to close store: %v", err)
	}
}

// newPipeline wires config, store, analyzers, linter and model client.
func newPipeline() (*pipeline, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	gdb, err := db.Open(cfg.DB.Dir)
	if err != nil {
		return nil, err
	}
	store := db.NewStore(gdb)

	aggregator := analysis.NewAggregator(pylint.New(cfg.Linter))
	reviewer := ai.NewClient(cfg.AI)
	controller := review.NewController(store, aggregator, reviewer, cfg.AIRatePerMinute)

	return &pipeline{
		config:     cfg,
		store:      store,
		controller: controller,
	}, nil
}
