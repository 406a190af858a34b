// FILE: lixenwraith/iniconf/cmd/iniconf/commands.go
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/iniconf"
)

func newGetCmd(opts *options) *cobra.Command {
	var def string
	cmd := &cobra.Command{
		Use:   "get FILE SECTION KEY",
		Short: "Print a value, or the default when it is absent",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore(args[0], false)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.ReadString(args[1], args[2], def))
			return nil
		},
	}
	cmd.Flags().StringVarP(&def, "default", "d", "", "value printed when the key is absent")
	return cmd
}

func newSetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set FILE SECTION KEY VALUE",
		Short: "Write a value and save the file",
		Long:  "Write a value and save the file. A missing file is created; a malformed one is left untouched.",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openForEdit(opts, args[0])
			if err != nil {
				return err
			}
			store.WriteString(args[1], args[2], args[3])
			return store.Save("")
		},
	}
}

func newRmCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rm FILE SECTION [KEY]",
		Short: "Remove a key, or a whole section, and save the file",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openForEdit(opts, args[0])
			if err != nil {
				return err
			}
			if len(args) == 3 {
				store.RemoveValue(args[1], args[2])
			} else {
				store.RemoveSection(args[1])
			}
			return store.Save("")
		},
	}
}

func newSectionsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sections FILE",
		Short: "List section names in file order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore(args[0], false)
			if err != nil {
				return err
			}
			var names []string
			store.ReadSections(&names)
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newKeysCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "keys FILE SECTION",
		Short: "Print the key = value pairs of a section in file order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore(args[0], false)
			if err != nil {
				return err
			}
			var keys, vals []string
			n := store.ReadSectionKeyValues(args[1], &keys, &vals)
			for i := 0; i < n; i++ {
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", keys[i], vals[i])
			}
			return nil
		},
	}
}

func newConvertCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "convert SRC DST",
		Short: "Re-encode SRC in the format given by DST's extension",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore(args[0], true)
			if err != nil {
				return err
			}
			// --format applies to SRC only
			if err := store.SetFormat(iniconf.FormatAuto); err != nil {
				return err
			}
			return store.Save(args[1])
		},
	}
}

// openForEdit loads path for modification. A missing file starts empty; any
// other load failure aborts so a malformed file is never overwritten.
func openForEdit(opts *options, path string) (*iniconf.Store, error) {
	store, err := opts.openStore(path, false)
	if err != nil {
		return nil, err
	}
	if err := store.LoadErr(); err != nil && !errors.Is(err, iniconf.ErrSourceNotFound) {
		return nil, fmt.Errorf("refusing to overwrite %s: %w", path, err)
	}
	return store, nil
}
