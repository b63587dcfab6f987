package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/forestrie/go-bloombox/bloom"
	"github.com/forestrie/go-bloombox/bloommetrics"
)

// Output formats for info.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatProm  = "prom"
)

var ErrUnknownFormat = errors.New("unknown output format")

func newInfoCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "info NAME",
		Short: "Show filter parameters and diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			f, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			path, err := store.Path(args[0])
			if err != nil {
				return err
			}

			if format == formatProm {
				return writeMetrics(cmd.OutOrStdout(), args[0], f)
			}

			return writeStats(cmd.OutOrStdout(), format, args[0], path, f.Stats())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", formatTable, "output format: table, json, yaml, prom")

	return cmd
}

type statsReport struct {
	Name  string      `json:"name" yaml:"name"`
	Path  string      `json:"path" yaml:"path"`
	Stats bloom.Stats `json:"stats" yaml:"stats"`
}

func writeStats(w io.Writer, format, name, path string, st bloom.Stats) error {
	report := statsReport{Name: name, Path: path, Stats: st}

	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(report)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		err := enc.Encode(report)
		if err != nil {
			return err
		}

		return enc.Close()
	case formatTable:
		tbl := newTable()
		tbl.AppendRows([]table.Row{
			{"name", name},
			{"path", path},
			{"bit length", humanize.Comma(int64(st.BitLength))},
			{"hash count", st.HashCount},
			{"expected items", humanize.Comma(int64(st.ExpectedItems))},
			{"target fp rate", strconv.FormatFloat(st.TargetFPRate, 'g', -1, 64)},
			{"inserted", humanize.Comma(int64(st.InsertedCount))},
			{"set bits", humanize.Comma(int64(st.SetBits))},
			{"fill ratio", fmt.Sprintf("%.4f", st.FillRatio)},
			{"estimated fp rate", fmt.Sprintf("%.4g", st.EstimatedFPRate)},
			{"encoded size", humanize.IBytes(st.SizeBytes)},
		})

		_, err := fmt.Fprintln(w, tbl.Render())

		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// writeMetrics prints the filter's collector output in the Prometheus text
// exposition format.
func writeMetrics(w io.Writer, name string, f *bloom.Filter) error {
	reg := prometheus.NewPedanticRegistry()

	err := reg.Register(bloommetrics.NewCollector(name, bloom.NewLocked(f)))
	if err != nil {
		return err
	}

	families, err := reg.Gather()
	if err != nil {
		return err
	}

	for _, mf := range families {
		_, err = expfmt.MetricFamilyToText(w, mf)
		if err != nil {
			return err
		}
	}

	return nil
}
