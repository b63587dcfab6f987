package commands

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/forestrie/go-bloombox/bloom"
)

// sizingFlags are shared by commands that size a new filter.
type sizingFlags struct {
	expected uint64
	fpRate   float64
}

func (s *sizingFlags) register(cmd *cobra.Command) {
	cmd.Flags().Uint64VarP(&s.expected, "expected", "n", 0, "expected number of elements (default defaults.expected_items)")
	cmd.Flags().Float64VarP(&s.fpRate, "fp", "p", 0, "target false positive rate in (0, 1) (default defaults.fp_rate)")
}

// resolve fills unset flags from the fallbacks.
func (s *sizingFlags) resolve(cmd *cobra.Command, expected uint64, fpRate float64) (uint64, float64) {
	if cmd.Flags().Changed("expected") {
		expected = s.expected
	}

	if cmd.Flags().Changed("fp") {
		fpRate = s.fpRate
	}

	return expected, fpRate
}

func newParamsCommand(a *app) *cobra.Command {
	var sizing sizingFlags

	cmd := &cobra.Command{
		Use:   "params",
		Short: "Show the sizing for an element count and false positive rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			expected, fpRate := sizing.resolve(cmd, a.cfg.Defaults.ExpectedItems, a.cfg.Defaults.FPRate)

			bitLength, hashCount, err := bloom.ComputeParameters(expected, fpRate)
			if err != nil {
				return err
			}

			tbl := newTable()
			tbl.AppendRows([]table.Row{
				{"expected items", humanize.Comma(int64(expected))},
				{"target fp rate", strconv.FormatFloat(fpRate, 'g', -1, 64)},
				{"bit length", humanize.Comma(int64(bitLength))},
				{"hash count", hashCount},
				{"bits per element", fmt.Sprintf("%.2f", float64(bitLength)/float64(expected))},
				{"bitset size", humanize.IBytes(bloom.BitsetBytes(bitLength))},
				{"encoded size", humanize.IBytes(bloom.EncodedBytesV1(bitLength))},
			})

			fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())

			return nil
		},
	}

	sizing.register(cmd)

	return cmd
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false

	return tbl
}
