// Package cli implements the formblock command line.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formblock/pkg/config"
)

// CLI holds the root command and the state shared by subcommands.
type CLI struct {
	version    string
	configPath string
	basePath   string
	verbose    bool
	rootCmd    *cobra.Command

	cfg    *config.Config
	logger *zap.Logger
}

// New creates a CLI for the given version string.
func New(version string) *CLI {
	c := &CLI{version: version}
	c.setupCommands()
	return c
}

func (c *CLI) setupCommands() {
	c.rootCmd = &cobra.Command{
		Use:           "formblock",
		Short:         "Render authored form blocks into HTML forms",
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	flags := c.rootCmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "path to formblock.yaml")
	flags.StringVar(&c.basePath, "base-path", "", "code base path (overrides codeBasePath from the config file)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	c.rootCmd.AddCommand(c.newRenderCommand())
	c.rootCmd.AddCommand(c.newAEMCommand())
	c.rootCmd.AddCommand(c.newImportSheetCommand())
}

// Run executes the CLI.
func (c *CLI) Run() error {
	return c.rootCmd.Execute()
}

func (c *CLI) initApp() error {
	cfg := config.Default()
	if c.configPath != "" {
		loaded, err := config.Load(c.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if c.verbose {
		cfg.Logging.Level = config.LevelDebug
	}
	c.cfg = cfg
	// stdout carries rendered pages, so every log line goes to stderr.
	c.logger = cfg.Logging.PrepareWith(os.Stderr, os.Stderr)
	return nil
}

// basePathProvider returns the --base-path override when set, otherwise a
// provider that re-reads the config file at resolution time. Without either
// the stylesheet step is skipped.
func (c *CLI) basePathProvider(cmd *cobra.Command) config.BasePathProvider {
	if cmd.Flags().Changed("base-path") {
		return config.StaticBasePath(c.basePath)
	}
	if c.configPath != "" {
		return config.FileBasePath(c.configPath)
	}
	return nil
}
