package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/penwyp/cloudwatcher/internal/config"
	"github.com/penwyp/cloudwatcher/internal/util"
)

var (
	// Logging related
	debug bool

	// AWS related
	region string

	// Config file
	configPath string

	rootCmd = &cobra.Command{
		Use:   "cloudwatcher",
		Short: "Tail AWS CloudWatch log groups from the terminal",
		Long: `cloudwatcher polls CloudWatch Logs and prints new events as they arrive,
without re-printing events already shown.

Examples:
  cloudwatcher list                                  # List available log groups
  cloudwatcher watch /aws/lambda/my-fn               # Tail one log group
  cloudwatcher watch api-logs worker-logs -f 5s      # Tail two groups, refresh every 5s
  cloudwatcher --region us-east-1 watch api-logs     # Override region`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

const defaultLogFile = "~/.cloudwatcher/logs/app.log"

func init() {
	rootCmd.PersistentFlags().StringVar(&region, "region", "",
		"AWS region (overrides config file and environment)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file path (default ~/.cloudwatcher/config.toml)")
}

// setup initializes logging and loads the config file before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		logFile = ""
	}
	if err := util.InitLogger(logLevel, logFile, debug); err != nil {
		return err
	}
	return nil
}

// loadConfig layers the config file under the command-line flags.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if region != "" {
		cfg.Region = region
	}
	return cfg, nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// Execute runs the root command, exiting non-zero on unrecoverable errors.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
