package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/forestrie/go-bloombox/bloom"
)

func newCreateCommand(a *app) *cobra.Command {
	var (
		sizing sizingFlags
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an empty filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			store, err := a.openStore()
			if err != nil {
				return err
			}

			exists, err := store.Exists(cmd.Context(), name)
			if err != nil {
				return err
			}

			if exists && !force {
				return fmt.Errorf("%w: %s (use --force to replace it)", ErrFilterExists, name)
			}

			expected, fpRate := sizing.resolve(cmd, a.cfg.Defaults.ExpectedItems, a.cfg.Defaults.FPRate)

			f, err := bloom.New(expected, fpRate)
			if err != nil {
				return err
			}

			err = store.Save(cmd.Context(), name, f)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s: %d bits, %d hashes\n", name, f.BitLength(), f.HashCount())

			return nil
		},
	}

	sizing.register(cmd)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing filter")

	return cmd
}

func newAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME [ELEMENT...]",
		Short: "Insert elements (reads lines from stdin when none are given)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			elems, err := readElements(args[1:], cmd.InOrStdin())
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}

			f, err := store.Load(cmd.Context(), name)
			if err != nil {
				return err
			}

			f.InsertAll(elems)

			err = store.Save(cmd.Context(), name, f)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "added %d elements to %s (%d inserted total)\n", len(elems), name, f.InsertedCount())

			if f.InsertedCount() > f.ExpectedItems() && f.ExpectedItems() > 0 {
				a.log.Infof("filter %s holds %d elements, above its design capacity %d; estimated fp rate %.4g",
					name, f.InsertedCount(), f.ExpectedItems(), f.EstimatedFPRate())
			}

			return nil
		},
	}
}

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check NAME [ELEMENT...]",
		Short: "Test elements for possible membership (reads lines from stdin when none are given)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			elems, err := readElements(args[1:], cmd.InOrStdin())
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}

			f, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			maybe := color.New(color.FgGreen)
			absent := color.New(color.FgRed)
			out := cmd.OutOrStdout()

			for i, present := range f.ContainsAll(elems) {
				if present {
					maybe.Fprint(out, "maybe ")
				} else {
					absent.Fprint(out, "absent")
				}

				fmt.Fprintf(out, "\t%s\n", elems[i])
			}

			return nil
		},
	}
}
