package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forestrie/go-bloombox/bloom"
	"github.com/forestrie/go-bloombox/filestore"
)

var ErrNoElementFile = errors.New("--from is required")

// newRebuildCommand replaces a filter with a freshly sized one populated from
// a list of elements. Filters cannot grow, so this is the only way to change
// capacity.
func newRebuildCommand(a *app) *cobra.Command {
	var (
		sizing sizingFlags
		from   string
	)

	cmd := &cobra.Command{
		Use:   "rebuild NAME --from FILE",
		Short: "Rebuild a filter at a new capacity from a list of elements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if from == "" {
				return ErrNoElementFile
			}

			elems, err := readElementFile(from)
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}

			// Without flags, keep the old target rate and grow the capacity
			// to at least the number of elements.
			expected := max(uint64(len(elems)), 1)
			fpRate := a.cfg.Defaults.FPRate

			old, err := store.Load(cmd.Context(), name)

			switch {
			case err == nil:
				expected = max(expected, old.ExpectedItems())
				if old.TargetFPRate() > 0 {
					fpRate = old.TargetFPRate()
				}
			case errors.Is(err, filestore.ErrNotFound):
			default:
				return err
			}

			expected, fpRate = sizing.resolve(cmd, expected, fpRate)

			f, err := bloom.New(expected, fpRate)
			if err != nil {
				return err
			}

			f.InsertAll(elems)

			err = store.Save(cmd.Context(), name, f)
			if err != nil {
				return err
			}

			a.log.Infof("rebuilt filter %s from %s: expected=%d fp=%g elements=%d", name, from, expected, fpRate, len(elems))
			fmt.Fprintf(cmd.OutOrStdout(), "rebuilt %s: %d elements, %d bits, %d hashes\n",
				name, len(elems), f.BitLength(), f.HashCount())

			return nil
		},
	}

	sizing.register(cmd)
	cmd.Flags().StringVar(&from, "from", "", "file with one element per line")

	return cmd
}
