// Package excel renders a report as a two-sheet .xlsx workbook.
package excel

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"kassa/internal/report"
)

const (
	SheetSummary = "Currency Balances"
	SheetDetails = "Order Details"
)

var (
	summaryHeader = []interface{}{"Currency", "Cash", "Card", "Documents", "Test Orders"}
	detailHeader  = []interface{}{"Date", "Order", "Cash, PLN", "PLN total", "Cash, USD", "Cash, EUR", "Card", "Currency", "Comment", "Test Order"}
)

// Workbook builds the workbook in memory. Negative summary rows get a light
// red fill; a negative PLN running total gets a red font, mirroring how the
// register highlights shortfalls.
func Workbook(r *report.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("rename summary sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetDetails); err != nil {
		return nil, fmt.Errorf("add details sheet: %w", err)
	}

	negativeFill, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFCCCC"}},
	})
	if err != nil {
		return nil, fmt.Errorf("create fill style: %w", err)
	}
	redFont, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "FF0000"}})
	if err != nil {
		return nil, fmt.Errorf("create font style: %w", err)
	}

	if err := writeSummary(f, r, negativeFill); err != nil {
		return nil, err
	}
	if err := writeDetails(f, r, redFont); err != nil {
		return nil, err
	}
	return f, nil
}

func writeSummary(f *excelize.File, r *report.Report, negativeFill int) error {
	if err := f.SetSheetRow(SheetSummary, "A1", &summaryHeader); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	for i, s := range r.Summary {
		rowNum := i + 2
		row := []interface{}{
			string(s.Currency),
			s.Cash.InexactFloat64(),
			s.Card.InexactFloat64(),
			s.Count,
			s.TestCount,
		}
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return fmt.Errorf("summary row %d: %w", rowNum, err)
		}
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", rowNum, err)
		}
		if s.Cash.IsNegative() || s.Card.IsNegative() {
			last, _ := excelize.CoordinatesToCellName(len(row), rowNum)
			if err := f.SetCellStyle(SheetSummary, cell, last, negativeFill); err != nil {
				return fmt.Errorf("style summary row %d: %w", rowNum, err)
			}
		}
	}
	return nil
}

func writeDetails(f *excelize.File, r *report.Report, redFont int) error {
	if err := f.SetSheetRow(SheetDetails, "A1", &detailHeader); err != nil {
		return fmt.Errorf("write detail header: %w", err)
	}
	if err := f.SetColWidth(SheetDetails, "A", "A", 15); err != nil {
		return fmt.Errorf("set date column width: %w", err)
	}
	for i, d := range r.Details {
		rowNum := i + 2
		testOrder := "no"
		if d.IsTest {
			testOrder = "yes"
		}
		row := []interface{}{
			d.Date.Format("2006-01-02"),
			d.OrderID,
			cellValue(d.CashPLN),
			d.PLNTotal.InexactFloat64(),
			cellValue(d.CashUSD),
			cellValue(d.CashEUR),
			cellValue(d.Card),
			string(d.Currency),
			d.Comment,
			testOrder,
		}
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return fmt.Errorf("detail row %d: %w", rowNum, err)
		}
		if err := f.SetSheetRow(SheetDetails, cell, &row); err != nil {
			return fmt.Errorf("write detail row %d: %w", rowNum, err)
		}
		if d.PLNTotal.IsNegative() {
			totalCell, _ := excelize.CoordinatesToCellName(4, rowNum)
			if err := f.SetCellStyle(SheetDetails, totalCell, totalCell, redFont); err != nil {
				return fmt.Errorf("style detail row %d: %w", rowNum, err)
			}
		}
	}
	return nil
}

func cellValue(nd decimal.NullDecimal) interface{} {
	if !nd.Valid {
		return nil
	}
	return nd.Decimal.InexactFloat64()
}

// Writer renders workbooks to a file path.
type Writer struct {
	Path string
}

func (w Writer) Render(ctx context.Context, r *report.Report) error {
	f, err := Workbook(r)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(w.Path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	slog.InfoContext(ctx, "Workbook written",
		"path", w.Path,
		"detail_rows", len(r.Details))
	return nil
}
