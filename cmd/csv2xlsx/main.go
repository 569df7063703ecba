// Copyright 2021, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Command csv2xlsx converts CSV files into the sheets of a formatted xlsx workbook.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/UNO-SOFT/xtable"
	"github.com/UNO-SOFT/xtable/xlsx"
	"github.com/UNO-SOFT/zlog/v2"
	"github.com/klauspost/compress/gzip"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"gopkg.in/yaml.v3"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		logger.Error("MAIN", "error", err)
		os.Exit(1)
	}
}

func Main() error {
	fs := flag.NewFlagSet("csv2xlsx", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	flagEnc := fs.String("charset", xtable.EncName, "csv charset name")
	flagOut := fs.String("o", "", "output file name (default: first input + .xlsx; .gz suffix compresses)")
	flagStyle := fs.String("style", "", "YAML style file")
	flagColor := fs.String("alternate-color", "", "background color of every second row (RRGGBB)")
	flagFontSize := fs.Float64("f", 0, "default font size")
	flagBorder := fs.String("border", "", "border style around the table (thin, medium, double...)")
	fs.Bool("numbers", false, "write numeric fields as numbers")
	fs.Bool("autosize", true, "set column widths from the contents (overrides the style file)")
	flagTitle := fs.String("title", "", "document title")

	app := ffcli.Command{Name: "csv2xlsx", FlagSet: fs,
		ShortUsage: "csv2xlsx [flags] [name:]file.csv...",
		Options:    []ff.Option{ff.WithEnvVarPrefix("XTABLE")},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			st, err := loadStyle(*flagStyle)
			if err != nil {
				return err
			}
			if *flagColor != "" {
				st.Alternate.BgColor = xtable.String(strings.TrimPrefix(*flagColor, "#"))
			}
			if *flagFontSize > 0 {
				st.DefaultFontSize = *flagFontSize
			}
			if *flagBorder != "" {
				st.Table = &xtable.RangeOptions{BorderOptions: xtable.BorderOptions{Style: *flagBorder}}
			}
			if *flagTitle != "" {
				st.Title = *flagTitle
			}
			applyExplicitFlags(fs, &st)

			out := *flagOut
			if out == "" && args[0] != "" && args[0] != "-" {
				_, fn := sheetName(0, args[0])
				out = strings.TrimSuffix(fn, ".csv") + ".xlsx"
			}
			w, err := create(out)
			if err != nil {
				return err
			}
			defer w.Close()

			st.SheetTitle, _ = sheetName(0, args[0])
			st.Logger = logger
			tbl, err := xtable.New(xlsx.NewWriter(w), st.Config)
			if err != nil {
				return err
			}
			for i, arg := range args {
				name, fn := sheetName(i, arg)
				if i != 0 {
					if err = tbl.AddSheet(name, xtable.SheetOptions{}); err != nil {
						return err
					}
				}
				if err = copyFile(ctx, tbl, st, *flagEnc, fn); err != nil {
					return fmt.Errorf("%q: %w", fn, err)
				}
			}
			if err = tbl.Close(); err != nil {
				return err
			}
			return w.Close()
		},
	}

	if err := app.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	slog.SetDefault(logger)
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.Run(ctx)
}

// Style is the contents of the style file.
type Style struct {
	xtable.Config `yaml:",inline"`

	// Global options apply to every cell.
	Global xtable.Options `yaml:"global"`
	// Header options apply to the first row of each CSV.
	Header xtable.Options `yaml:"header"`
	// Alternate options apply to every second data row.
	Alternate xtable.Options `yaml:"alternate"`
	// Table options apply to the whole table, header included.
	Table   *xtable.RangeOptions         `yaml:"table"`
	Columns map[int]xtable.ColumnOptions `yaml:"columns"`

	Numbers  bool `yaml:"numbers"`
	AutoSize bool `yaml:"autosize"`
	// AutoSizeRows sets the height of rows with multi-line cells.
	AutoSizeRows bool `yaml:"autosize_rows"`
}

func defaultStyle() Style {
	return Style{Header: xtable.Options{Bold: xtable.Bool(true)}, AutoSize: true}
}

func loadStyle(fn string) (Style, error) {
	st := defaultStyle()
	if fn == "" {
		return st, nil
	}
	b, err := os.ReadFile(fn)
	if err != nil {
		return st, err
	}
	if err = yaml.Unmarshal(b, &st); err != nil {
		return st, fmt.Errorf("parse %q: %w", fn, err)
	}
	return st, nil
}

// applyExplicitFlags copies the boolean flags given on the command line
// (or in the environment) onto st, overriding the style file.
func applyExplicitFlags(fs *flag.FlagSet, st *Style) {
	fs.Visit(func(f *flag.Flag) {
		g, ok := f.Value.(flag.Getter)
		if !ok {
			return
		}
		b, ok := g.Get().(bool)
		if !ok {
			return
		}
		switch f.Name {
		case "numbers":
			st.Numbers = b
		case "autosize":
			st.AutoSize = b
		}
	})
}

// sheetName splits "name:file"; the name defaults to the base name of the file.
func sheetName(i int, arg string) (name, fn string) {
	if j := strings.IndexByte(arg, ':'); j >= 0 {
		return arg[:j], arg[j+1:]
	}
	if arg == "" || arg == "-" {
		return "Sheet" + strconv.Itoa(i+1), arg
	}
	return strings.TrimSuffix(filepath.Base(arg), ".csv"), arg
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// create the output file; stdout for "" and "-". A ".gz" suffix means gzip compression.
func create(fn string) (io.WriteCloser, error) {
	var w io.WriteCloser = nopCloser{os.Stdout}
	if !(fn == "" || fn == "-") {
		fh, err := os.Create(fn)
		if err != nil {
			return nil, err
		}
		w = fh
	}
	if !strings.HasSuffix(fn, ".gz") {
		return w, nil
	}
	return &gzipFile{Writer: gzip.NewWriter(w), file: w}, nil
}

type gzipFile struct {
	*gzip.Writer
	file   io.WriteCloser
	closed bool
}

func (g *gzipFile) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	err := g.Writer.Close()
	if closeErr := g.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func copyFile(ctx context.Context, tbl *xtable.Table, st Style, encName, fn string) error {
	cr, err := xtable.OpenCSV(fn, encName)
	if err != nil {
		return err
	}
	defer cr.Close()

	header, err := cr.Read()
	if err != nil {
		return err
	}
	tbl.SetGlobalOptions(st.Global)
	tbl.StartRange()
	if err = tbl.SetRowOptions(st.Header); err != nil {
		return err
	}
	for _, h := range header {
		if err = tbl.Write(h, 1, xtable.Options{}); err != nil {
			return err
		}
	}
	tbl.NextRow()

	var n int
	for ; ; n++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		row, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if n%2 == 1 {
			if err = tbl.SetRowOptions(st.Alternate); err != nil {
				return err
			}
		}
		for _, s := range row {
			var v any = s
			if st.Numbers && isNumber(s) {
				v = xtable.Number(s)
			}
			if err = tbl.Write(v, 1, xtable.Options{}); err != nil {
				return err
			}
		}
		if st.AutoSizeRows {
			if err = tbl.AutoSizeRow(0); err != nil {
				return err
			}
		}
		tbl.NextRow()
	}
	logger.Info("sheet written", "file", fn, "columns", len(header), "rows", n)

	if st.Table != nil {
		tbl.EndRangeAt(xtable.Coord{Col: tbl.MaxCol() - 1, Row: tbl.Row() - 1})
		if err = tbl.ApplyRangeOptions(*st.Table); err != nil {
			return err
		}
	} else {
		tbl.ResetRange()
	}
	for col, co := range st.Columns {
		if err = tbl.SetColumnOptions(col, co); err != nil {
			return err
		}
	}
	if st.AutoSize {
		return tbl.AutoSizeAllColumns()
	}
	return nil
}

func isNumber(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
