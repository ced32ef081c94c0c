package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/teamtab/internal/core"
)

const (
	formatTSV  = "tsv"
	formatXLSX = "xlsx"
)

// outputFlags are shared by the commands that write rows.
type outputFlags struct {
	layout string
	format string
	out    string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.layout, "layout", "l", "", "column layout (see \"teamtab layouts\")")
	cmd.Flags().StringVarP(&o.format, "format", "f", formatTSV, "output format: tsv or xlsx")
	cmd.Flags().StringVarP(&o.out, "out", "o", "-", "output file, \"-\" for stdout")
}

func (o *outputFlags) validate() error {
	switch strings.ToLower(o.format) {
	case formatTSV, formatXLSX:
		return nil
	default:
		return fmt.Errorf("unknown format %q", o.format)
	}
}

// loadAndWrite runs src through a fresh workspace and writes the rows.
func (root *rootCommand) loadAndWrite(ctx context.Context, cmd *cobra.Command, src core.Source, o *outputFlags) error {
	if err := o.validate(); err != nil {
		return err
	}

	service, err := root.newService()
	if err != nil {
		return err
	}
	if err := service.Load(ctx, src); err != nil {
		return err
	}

	snap := service.Snapshot()
	if snap.Empty() {
		return core.ErrNoRows
	}

	w, closeFn, err := openOutput(cmd.OutOrStdout(), o.out)
	if err != nil {
		return err
	}

	err = writeSnapshot(w, snap, strings.ToLower(o.format))
	if cerr := closeFn(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	slog.Info("export complete",
		"source", src.Name(),
		"layout", snap.Layout.Key,
		"teams", len(snap.Teams),
		"rows", len(snap.Rows()),
		"format", o.format,
		"out", o.out,
	)
	return nil
}

func writeSnapshot(w io.Writer, snap core.Snapshot, format string) error {
	if format == formatXLSX {
		return snap.WriteXLSX(w)
	}

	payload, err := snap.TSV()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, payload+"\n")
	return err
}

// openOutput returns stdout for "-" or an empty path, otherwise a new file.
func openOutput(stdout io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, f.Close, nil
}
