package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lumenpage/materials-cli/internal/api"
	"github.com/lumenpage/materials-cli/internal/config"
	"github.com/lumenpage/materials-cli/internal/tui"
)

var (
	cfgFile      string
	verbose      bool
	quiet        bool
	globalConfig *config.Config

	pickProject string
	pickMulti   bool
	pickMax     int
	pickFormat  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "materials-cli",
	Short: "A CLI tool for browsing and managing content materials",
	Long: `Materials-CLI is a command line tool for the materials library of a
content creation service. It browses, filters, uploads, and generates
material images, and can act as an interactive picker whose confirmed
selection is printed for the calling process.

Example usage:
  materials-cli                       # Interactive material picker
  materials-cli --project 42f0c1aa    # Pick inside a project context
  materials-cli list --scope none     # List unassigned materials
  materials-cli upload cover.png
  materials-cli serve                 # Run the local dev service`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPicker(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", fmt.Sprintf("config file (default is %s)", config.GetDefaultConfigPath()))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "enable quiet mode")

	// Picker flags
	rootCmd.Flags().StringVarP(&pickProject, "project", "P", "", "project id to pick within (empty = global)")
	rootCmd.Flags().BoolVar(&pickMulti, "multi", true, "allow selecting multiple materials")
	rootCmd.Flags().IntVar(&pickMax, "max", 0, "selection cap in multi mode (0 = unlimited)")
	rootCmd.Flags().StringVarP(&pickFormat, "format", "f", "urls", "output format for the confirmed selection (urls, json, yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	var err error
	globalConfig, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	setupLogging()

	return nil
}

// setupLogging configures the global logger based on config and flags
func setupLogging() {
	level := globalConfig.Log.Level
	if verbose {
		level = "debug"
	} else if quiet {
		level = "error"
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Invalid log level %s, using info", level)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	// Redirect all logs to file to prevent UI interference
	logDir := "/tmp/materials-cli"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		logrus.Warnf("Failed to create log directory %s: %v", logDir, err)
	} else {
		logFile := filepath.Join(logDir, "app.log")
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			logrus.Warnf("Failed to open log file %s: %v", logFile, err)
		} else {
			logrus.SetOutput(file)
		}
	}

	if globalConfig.Log.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: quiet,
			FullTimestamp:    verbose,
		})
	}
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return globalConfig
}

// newAPIClient creates the materials service client from config.
func newAPIClient() (*api.Client, error) {
	client, err := api.NewClient(&globalConfig.API)
	if err != nil {
		return nil, fmt.Errorf("failed to create materials service client: %w", err)
	}
	return client, nil
}

// runPicker launches the interactive material picker and prints the
// confirmed selection on stdout.
func runPicker(cmd *cobra.Command) error {
	cfg := globalConfig

	client, err := newAPIClient()
	if err != nil {
		return err
	}

	// Flag > config for picker behavior.
	if cmd.Flags().Changed("multi") {
		cfg.UI.MultiSelect = pickMulti
	}
	if cmd.Flags().Changed("max") {
		cfg.UI.MaxSelection = pickMax
	}

	model := tui.NewPickerModel(client, cfg, pickProject)

	if userData, err := config.LoadUserData(); err == nil {
		model.SetUserData(userData)
	}

	var confirmed []api.Material
	model.SetOnSelect(func(materials []api.Material) {
		confirmed = materials
	})

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		return err
	}

	if len(confirmed) == 0 {
		logrus.Info("picker closed without a selection")
		return nil
	}

	return printMaterials(os.Stdout, confirmed, client, pickFormat)
}
