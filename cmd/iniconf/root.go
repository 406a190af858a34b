// FILE: lixenwraith/iniconf/cmd/iniconf/root.go
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/iniconf"
)

// options carries the persistent flags shared by every subcommand.
type options struct {
	verbose bool
	format  string
	logger  *log.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "iniconf",
		Short: "Inspect and edit section/key configuration files",
		Long: `iniconf reads and writes [section] / key = value configuration files.
TOML, YAML and JSON files are handled by extension, with top-level
tables, mappings or objects acting as sections.

Examples:
  iniconf sections risk.ini                List sections
  iniconf get risk.ini Risk MaxPos -d 0    Print a value with a fallback
  iniconf set risk.ini Risk MaxPos 200     Write a value and save
  iniconf convert risk.ini risk.yaml       Re-encode in another format`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
				Prefix: "iniconf",
			})
			if opts.verbose {
				opts.logger.SetLevel(log.DebugLevel)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", "", "force the file format (ini, toml, yaml, json)")

	root.AddCommand(
		newGetCmd(opts),
		newSetCmd(opts),
		newRmCmd(opts),
		newSectionsCmd(opts),
		newKeysCmd(opts),
		newConvertCmd(opts),
	)
	return root
}

// openStore loads path into a new Store. Load failures are logged and, unless
// strict is set, absorbed so reads degrade to defaults.
func (o *options) openStore(path string, strict bool) (*iniconf.Store, error) {
	store := iniconf.New()
	if o.logger == nil {
		o.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "iniconf"})
	}
	store.SetLogger(o.logger)

	format, err := iniconf.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}
	if err := store.SetFormat(format); err != nil {
		return nil, err
	}

	if err := store.Load(path); err != nil && strict {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return store, nil
}
