package importer

import (
	"strings"
	"testing"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "ISO", input: "2024-01-15", want: "2024-01-15"},
		{name: "Day-first slashes", input: "15/01/2024", want: "2024-01-15"},
		{name: "Day-first dashes", input: "15-01-2024", want: "2024-01-15"},
		{name: "Surrounding whitespace", input: " 2024-01-15 ", want: "2024-01-15"},
		{name: "Garbage", input: "not-a-date", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
		{name: "Impossible day", input: "32/01/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("Partial success keeps valid subset", func(t *testing.T) {
		rows := []RawRow{
			{Date: "2024-01-01", Wallets: map[string]float64{"Cold": 1000}},
			{Date: "2024-01-02", Wallets: map[string]float64{"Cold": 1100}},
			{Date: "bogus", Wallets: map[string]float64{"Cold": 1200}},
			{Date: "2024-01-04", Wallets: map[string]float64{"Cold": 1300}},
			{Date: "2024-01-05", Wallets: map[string]float64{"Cold": 1400}},
		}

		result := Validate(rows)

		if len(result.Valid) != 4 {
			t.Errorf("expected 4 valid rows, got %d", len(result.Valid))
		}
		if len(result.Errors) != 1 {
			t.Fatalf("expected 1 error, got %d: %v", len(result.Errors), result.Errors)
		}
		if result.Errors[0] != "Row 3: Invalid date" {
			t.Errorf("expected \"Row 3: Invalid date\", got %q", result.Errors[0])
		}
	})

	t.Run("Row without wallet values is rejected", func(t *testing.T) {
		result := Validate([]RawRow{
			{Date: "2024-01-01", Wallets: map[string]float64{}},
		})

		if len(result.Valid) != 0 {
			t.Errorf("expected no valid rows, got %d", len(result.Valid))
		}
		if len(result.Errors) != 1 || result.Errors[0] != "Row 1: No wallet values" {
			t.Errorf("unexpected errors: %v", result.Errors)
		}
	})

	t.Run("Total defaults to wallet sum", func(t *testing.T) {
		result := Validate([]RawRow{
			{Date: "01/02/2024", Wallets: map[string]float64{"Cold": 600, "Hot": 400}},
		})

		if len(result.Valid) != 1 {
			t.Fatalf("expected 1 valid row, got %d", len(result.Valid))
		}
		row := result.Valid[0]
		if row.Date != "2024-02-01" {
			t.Errorf("expected day-first normalization to 2024-02-01, got %s", row.Date)
		}
		if row.Total != 1000 {
			t.Errorf("expected total 1000, got %f", row.Total)
		}
	})

	t.Run("Supplied total wins over wallet sum", func(t *testing.T) {
		total := 950.0
		result := Validate([]RawRow{
			{Date: "2024-01-01", Wallets: map[string]float64{"Cold": 1000}, Total: &total},
		})

		if len(result.Valid) != 1 {
			t.Fatalf("expected 1 valid row, got %d", len(result.Valid))
		}
		if result.Valid[0].Total != 950 {
			t.Errorf("expected total 950, got %f", result.Valid[0].Total)
		}
	})

	t.Run("Row with unparseable amounts is rejected", func(t *testing.T) {
		result := Validate([]RawRow{
			{Date: "2024-01-01", Wallets: map[string]float64{"Cold": 1000}},
			{Date: "2024-01-02", Wallets: map[string]float64{}, BadAmounts: []string{"1,000.50"}},
		})

		if len(result.Valid) != 1 {
			t.Errorf("expected 1 valid row, got %d", len(result.Valid))
		}
		if len(result.Errors) != 1 || result.Errors[0] != "Row 2: Invalid amount" {
			t.Errorf("unexpected errors: %v", result.Errors)
		}
	})

	t.Run("Empty input yields empty partitions", func(t *testing.T) {
		result := Validate(nil)
		if len(result.Valid) != 0 || len(result.Errors) != 0 {
			t.Errorf("expected empty result, got %+v", result)
		}
	})
}

func TestParseCSV(t *testing.T) {
	t.Run("Header-driven wallet columns", func(t *testing.T) {
		input := "date,Cold,Hot,total\n2024-01-01,600,400,1000\n2024-01-02,700,,700\n"

		rows, err := ParseCSV(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}

		first := rows[0]
		if first.Date != "2024-01-01" {
			t.Errorf("expected date 2024-01-01, got %s", first.Date)
		}
		if first.Wallets["Cold"] != 600 || first.Wallets["Hot"] != 400 {
			t.Errorf("unexpected wallet values: %v", first.Wallets)
		}
		if first.Total == nil || *first.Total != 1000 {
			t.Errorf("expected total 1000, got %v", first.Total)
		}

		second := rows[1]
		if _, ok := second.Wallets["Hot"]; ok {
			t.Error("expected empty cell to be treated as absent")
		}
	})

	t.Run("Unparseable cells are recorded, not dropped", func(t *testing.T) {
		input := "date,Cold,Hot,total\n2024-01-01,abc,400,1000\n2024-01-02,700,300,oops\n2024-01-03,500,500,1000\n"

		rows, err := ParseCSV(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(rows))
		}
		if len(rows[0].BadAmounts) != 1 || rows[0].BadAmounts[0] != "abc" {
			t.Errorf("expected bad wallet cell recorded, got %v", rows[0].BadAmounts)
		}
		if len(rows[1].BadAmounts) != 1 || rows[1].BadAmounts[0] != "oops" {
			t.Errorf("expected bad total cell recorded, got %v", rows[1].BadAmounts)
		}
		if len(rows[2].BadAmounts) != 0 {
			t.Errorf("expected clean row, got %v", rows[2].BadAmounts)
		}

		result := Validate(rows)
		if len(result.Valid) != 1 {
			t.Errorf("expected 1 valid row, got %d", len(result.Valid))
		}
		if len(result.Errors) != 2 {
			t.Fatalf("expected 2 errors, got %v", result.Errors)
		}
		if result.Errors[0] != "Row 1: Invalid amount" || result.Errors[1] != "Row 2: Invalid amount" {
			t.Errorf("unexpected errors: %v", result.Errors)
		}
	})

	t.Run("Missing date column", func(t *testing.T) {
		if _, err := ParseCSV(strings.NewReader("Cold,Hot\n600,400\n")); err == nil {
			t.Error("expected error for header without date column")
		}
	})

	t.Run("Empty document", func(t *testing.T) {
		rows, err := ParseCSV(strings.NewReader(""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 0 {
			t.Errorf("expected no rows, got %d", len(rows))
		}
	})
}

func TestParseJSON(t *testing.T) {
	input := `[
	  {"date": "2024-01-01", "wallets": {"Cold": 1000}},
	  {"date": "15/01/2024", "wallets": {"Cold": 1100, "Hot": 200}, "total": 1300}
	]`

	rows, err := ParseJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].Total == nil || *rows[1].Total != 1300 {
		t.Errorf("expected total 1300, got %v", rows[1].Total)
	}

	if _, err := ParseJSON(strings.NewReader("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
