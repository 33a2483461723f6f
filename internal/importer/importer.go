// Package importer normalizes externally supplied snapshot rows (CSV or
// JSON) into the canonical daily snapshot shape. Validation partitions
// the input into valid rows and row-indexed error messages so a batch
// import can proceed with the valid subset.
package importer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// RawRow is one externally supplied row before validation. Wallets maps
// wallet display names to USD values.
type RawRow struct {
	Date    string             `json:"date"`
	Wallets map[string]float64 `json:"wallets"`
	Total   *float64           `json:"total,omitempty"`

	// BadAmounts lists numeric cells that failed to parse. Only the CSV
	// parser fills it; JSON decoding rejects non-numeric values outright.
	BadAmounts []string `json:"-"`
}

// Row is a validated row. Date is canonical YYYY-MM-DD and Total is the
// supplied total, or the sum of wallet values when none was supplied.
type Row struct {
	Date    string
	Wallets map[string]float64
	Total   float64
}

// Result partitions an import batch. Errors are indexed by the 1-based
// position of the offending row in the input.
type Result struct {
	Valid  []Row
	Errors []string
}

// Accepted input date layouts, tried in order. Numeric day/month forms
// are read day-first.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
}

// ParseDate normalizes an input date into canonical YYYY-MM-DD form.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unparseable date %q", s)
}

// Validate partitions rows into the valid subset and row-indexed errors.
// A row is valid iff its date parses, every numeric cell parsed, and at
// least one wallet value is present. Validate never fails as a whole.
func Validate(rows []RawRow) Result {
	result := Result{Valid: []Row{}, Errors: []string{}}

	for i, raw := range rows {
		date, err := ParseDate(raw.Date)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Invalid date", i+1))
			continue
		}
		if len(raw.BadAmounts) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Invalid amount", i+1))
			continue
		}
		if len(raw.Wallets) == 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: No wallet values", i+1))
			continue
		}

		total := 0.0
		if raw.Total != nil {
			total = *raw.Total
		} else {
			for _, v := range raw.Wallets {
				total += v
			}
		}

		result.Valid = append(result.Valid, Row{
			Date:    date,
			Wallets: raw.Wallets,
			Total:   total,
		})
	}

	return result
}

// ParseCSV reads raw rows from a CSV document. The header row must carry
// a "date" column; every other column is a wallet name, except an
// optional "total" column. Empty cells are treated as absent values.
func ParseCSV(r io.Reader) ([]RawRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []RawRow{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	dateCol := -1
	totalCol := -1
	walletCols := map[int]string{}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			dateCol = i
		case "total":
			totalCol = i
		default:
			walletCols[i] = strings.TrimSpace(name)
		}
	}
	if dateCol < 0 {
		return nil, fmt.Errorf("CSV header has no date column")
	}

	rows := []RawRow{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		raw := RawRow{Wallets: map[string]float64{}}
		if dateCol < len(record) {
			raw.Date = record[dateCol]
		}
		for col, name := range walletCols {
			if col >= len(record) {
				continue
			}
			cell := strings.TrimSpace(record[col])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				raw.BadAmounts = append(raw.BadAmounts, cell)
				continue
			}
			raw.Wallets[name] = v
		}
		if totalCol >= 0 && totalCol < len(record) {
			if cell := strings.TrimSpace(record[totalCol]); cell != "" {
				v, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					raw.BadAmounts = append(raw.BadAmounts, cell)
				} else {
					raw.Total = &v
				}
			}
		}
		rows = append(rows, raw)
	}

	return rows, nil
}

// ParseJSON reads raw rows from a JSON array of row objects.
func ParseJSON(r io.Reader) ([]RawRow, error) {
	var rows []RawRow
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode JSON rows: %w", err)
	}
	if rows == nil {
		rows = []RawRow{}
	}
	return rows, nil
}
