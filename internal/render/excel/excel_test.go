package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"kassa/internal/core"
	"kassa/internal/report"
)

func sampleReport() *report.Report {
	return &report.Report{
		Summary: []report.SummaryRow{
			{Currency: core.PLN, Cash: decimal.New(5000, -2), Card: decimal.Zero, Count: 2},
			{Currency: core.USD, Cash: decimal.Zero, Card: decimal.New(-20000, -2), Count: 1},
			{Currency: core.EUR, Cash: decimal.Zero, Card: decimal.Zero},
		},
		Details: []report.DetailLine{
			{
				Date:     time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
				OrderID:  "IN-1",
				CashPLN:  decimal.NullDecimal{Decimal: decimal.New(10000, -2), Valid: true},
				PLNTotal: decimal.New(10000, -2),
				Currency: core.PLN,
				Method:   core.Cash,
				Comment:  "opening",
			},
			{
				Date:     time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
				OrderID:  "OUT-1",
				Card:     decimal.NullDecimal{Decimal: decimal.New(-20000, -2), Valid: true},
				PLNTotal: decimal.New(10000, -2),
				Currency: core.USD,
				Method:   core.Card,
				IsTest:   true,
			},
		},
	}
}

func TestWorkbookLayout(t *testing.T) {
	f, err := Workbook(sampleReport())
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != SheetSummary || sheets[1] != SheetDetails {
		t.Fatalf("sheets = %v", sheets)
	}

	cases := []struct {
		sheet, cell, want string
	}{
		{SheetSummary, "A1", "Currency"},
		{SheetSummary, "A2", "PLN"},
		{SheetSummary, "B2", "50"},
		{SheetSummary, "C3", "-200"},
		{SheetSummary, "D2", "2"},
		{SheetDetails, "A1", "Date"},
		{SheetDetails, "A2", "2023-01-01"},
		{SheetDetails, "B2", "IN-1"},
		{SheetDetails, "C2", "100"},
		{SheetDetails, "D2", "100"},
		{SheetDetails, "C3", ""},   // card row: empty PLN cash cell
		{SheetDetails, "G3", "-200"},
		{SheetDetails, "H3", "USD"},
		{SheetDetails, "J2", "no"},
		{SheetDetails, "J3", "yes"},
	}
	for _, tc := range cases {
		got, err := f.GetCellValue(tc.sheet, tc.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s!%s): %v", tc.sheet, tc.cell, err)
		}
		if got != tc.want {
			t.Fatalf("%s!%s = %q, want %q", tc.sheet, tc.cell, got, tc.want)
		}
	}
}

func TestWriterSavesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	w := Writer{Path: path}
	if err := w.Render(context.Background(), sampleReport()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("empty workbook file")
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()
	got, err := f.GetCellValue(SheetSummary, "A2")
	if err != nil || got != "PLN" {
		t.Fatalf("A2 = %q (err=%v), want PLN", got, err)
	}
}
