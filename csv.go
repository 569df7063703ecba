// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xtable

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// EncName is the charset of the environment's LANG, utf-8 by default.
var EncName = "utf-8"

func init() {
	EncName = os.Getenv("LANG")
	if i := strings.IndexByte(EncName, '.'); i >= 0 {
		EncName = strings.ToLower(EncName[i+1:])
	} else {
		EncName = ""
	}
	if EncName == "" {
		EncName = "utf-8"
	}
}

// GetEncoding returns the named encoding, nil for UTF-8.
func GetEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(encName)
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

// CSVReader reads records from a CSV file. Close the underlying file with Close.
type CSVReader struct {
	*csv.Reader
	io.Closer
}

// OpenCSV opens the named file ("" or "-" is stdin) decoding it from encName,
// and guesses the field separator from the first kilobyte.
func OpenCSV(fn, encName string) (*CSVReader, error) {
	enc, err := GetEncoding(encName)
	if err != nil {
		return nil, err
	}
	fh := os.Stdin
	if !(fn == "" || fn == "-") {
		if fh, err = os.Open(fn); err != nil {
			return nil, err
		}
	}
	cr, err := NewCSVReader(fh, enc)
	if err != nil {
		fh.Close()
		return nil, fmt.Errorf("%q: %w", fn, err)
	}
	return &CSVReader{Reader: cr, Closer: fh}, nil
}

// NewCSVReader returns a csv.Reader over r decoded with enc (nil for UTF-8),
// with the separator guessed by SniffSeparator.
func NewCSVReader(r io.Reader, enc encoding.Encoding) (*csv.Reader, error) {
	if enc != nil {
		r = enc.NewDecoder().Reader(r)
	}
	br := bufio.NewReaderSize(r, 1<<20)
	b, err := br.Peek(1024)
	if err != nil && len(b) == 0 {
		return nil, err
	}
	cr := csv.NewReader(br)
	cr.ReuseRecord = true
	cr.Comma = SniffSeparator(string(b))
	return cr, nil
}

// SniffSeparator returns the first character of head which is not a letter,
// a digit, a quote or an underscore; a comma if there is none.
func SniffSeparator(head string) rune {
	for _, r := range head {
		if r == '"' || r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) {
			continue
		}
		return r
	}
	return ','
}
