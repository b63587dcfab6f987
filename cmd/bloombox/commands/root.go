// Package commands implements the bloombox CLI commands.
package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/forestrie/go-bloombox/filestore"
	"github.com/forestrie/go-bloombox/internal/config"
)

// Build metadata, set with -ldflags "-X ...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var ErrFilterExists = errors.New("filter already exists")

// app carries the global flags and the resources built from them.
type app struct {
	configPath string
	storeDir   string
	compress   bool
	logLevel   string
	noColor    bool

	cfg   *config.Config
	log   logger.Logger
	store *filestore.Store
}

// NewRootCommand returns the bloombox command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "bloombox",
		Short: "Build, query and persist Bloom filters",
		Long: `bloombox manages named Bloom filters stored in a local directory.

Commands:
  params    Show the sizing for an element count and false positive rate
  create    Create an empty filter
  add       Insert elements
  check     Test elements for possible membership
  info      Show filter parameters and diagnostics
  rebuild   Rebuild a filter at a new capacity from a list of elements
  list      List stored filters
  delete    Delete a stored filter`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default .bloombox.yaml in . or $HOME)")
	flags.StringVar(&a.storeDir, "store", "", "filter directory (overrides store.dir)")
	flags.BoolVar(&a.compress, "compress", false, "save filters lz4 compressed (overrides store.compress)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: DEBUG, INFO, WARN, ERROR, NOOP (overrides log.level)")
	flags.BoolVar(&a.noColor, "no-color", false, "disable coloured output")

	rootCmd.AddCommand(
		newParamsCommand(a),
		newCreateCommand(a),
		newAddCommand(a),
		newCheckCommand(a),
		newInfoCommand(a),
		newRebuildCommand(a),
		newListCommand(a),
		newDeleteCommand(a),
		newVersionCommand(),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store.Dir = a.storeDir
	}

	if flags.Changed("compress") {
		cfg.Store.Compress = a.compress
	}

	if flags.Changed("log-level") {
		cfg.Log.Level = strings.ToUpper(a.logLevel)
	}

	err = cfg.Validate()
	if err != nil {
		return fmt.Errorf("validate flags: %w", err)
	}

	if a.noColor {
		color.NoColor = true
	}

	logger.New(cfg.Log.Level)
	a.log = logger.Sugar.WithServiceName("bloombox")
	a.cfg = cfg

	return nil
}

// openStore builds the filter store on first use.
func (a *app) openStore() (*filestore.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	store, err := filestore.New(a.log, a.cfg.Store.Dir, filestore.WithCompression(a.cfg.Store.Compress))
	if err != nil {
		return nil, err
	}

	a.store = store

	return store, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bloombox %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}
