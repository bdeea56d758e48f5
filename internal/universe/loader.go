// Package universe loads the tradable instrument universe from NSE Market
// Watch CSV exports. The files carry a UTF-8 BOM and a variable number of
// preamble rows before the real header, so each file is scanned for the
// header line first and the remainder handed to a csv.Reader.
package universe

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"intraday-trader/internal/logger"
	"intraday-trader/internal/types"
)

// ErrEmpty means no valid symbol was found in any file. Startup treats
// this as fatal: without a universe there is nothing to trade.
var ErrEmpty = errors.New("universe: no instruments loaded")

// Load reads every *.csv under dir and returns the instrument universe
// sorted by symbol.
func Load(ctx context.Context, dir string) ([]types.Instrument, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var instruments []types.Instrument
	for _, file := range files {
		rows, err := parseFile(file)
		if err != nil {
			logger.Warn(ctx, "Skipping universe file", "file", file, "error", err)
			continue
		}
		for _, row := range rows {
			if seen[row.symbol] {
				continue
			}
			seen[row.symbol] = true
			name := strings.ToLower(row.name)
			if name == "" {
				name = strings.ToLower(row.symbol)
			}
			instruments = append(instruments, types.Instrument{
				Symbol: row.symbol + ".NS",
				Name:   name,
			})
		}
		logger.Info(ctx, "Loaded universe file", "file", filepath.Base(file), "symbols", len(rows))
	}

	if len(instruments) == 0 {
		return nil, ErrEmpty
	}
	sort.Slice(instruments, func(i, j int) bool {
		return instruments[i].Symbol < instruments[j].Symbol
	})
	logger.Info(ctx, "Universe loaded", "instruments", len(instruments))
	return instruments, nil
}

type row struct {
	symbol string
	name   string
}

func parseFile(path string) ([]row, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.TrimPrefix(string(b), "\ufeff")
	lines := strings.Split(text, "\n")

	headerIdx := -1
	for i, line := range lines {
		if strings.Contains(cleanCell(line), "SYMBOL") {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, errors.New("no SYMBOL header found")
	}

	r := csv.NewReader(strings.NewReader(strings.Join(lines[headerIdx:], "\n")))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("empty file")
	}

	symbolCol, nameCol := -1, -1
	for i, col := range records[0] {
		switch c := cleanCell(col); {
		case c == "SYMBOL":
			symbolCol = i
		case strings.HasPrefix(c, "NAMEOF") || c == "NAME" || c == "COMPANYNAME":
			nameCol = i
		}
	}
	if symbolCol < 0 {
		return nil, errors.New("no SYMBOL column found")
	}

	var rows []row
	for _, rec := range records[1:] {
		if symbolCol >= len(rec) {
			continue
		}
		sym := cleanSymbol(rec[symbolCol])
		if !validSymbol(sym) {
			continue
		}
		r := row{symbol: sym}
		if nameCol >= 0 && nameCol < len(rec) {
			r.name = strings.TrimSpace(strings.ReplaceAll(rec[nameCol], "&amp;", "&"))
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// cleanCell strips quotes and whitespace and upper-cases, for header matching.
func cleanCell(s string) string {
	s = strings.NewReplacer("\"", "", " ", "", "\t", "", "\r", "", "\n", "").Replace(s)
	return strings.ToUpper(s)
}

func cleanSymbol(s string) string {
	s = strings.ReplaceAll(s, "\"", "")
	s = strings.ReplaceAll(s, "&amp;", "&")
	return strings.ToUpper(strings.TrimSpace(s))
}

// validSymbol keeps equity symbols and drops index rows and junk cells.
func validSymbol(sym string) bool {
	if sym == "" || sym == "-" {
		return false
	}
	for _, prefix := range []string{"NIFTY", "BANKNIFTY", "FINNIFTY"} {
		if strings.HasPrefix(sym, prefix) {
			return false
		}
	}
	for _, r := range sym {
		if (r < 'A' || r > 'Z') && r != '&' {
			return false
		}
	}
	return true
}
