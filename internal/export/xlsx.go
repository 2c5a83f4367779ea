// Package export renders quotation documents into downloadable files.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/leora/backend/internal/model"
)

// SheetName is the single worksheet of an exported quotation.
const SheetName = "RAB"

// ItemHeaderRow is the row holding the item table header.
const ItemHeaderRow = 9

var itemHeaders = []string{"No", "Uraian", "Qty", "Satuan", "Harga Satuan", "Jumlah"}

// numFmtThousands is excelize's built-in "#,##0" format.
const numFmtThousands = 3

// WriteQuotation writes doc as an xlsx workbook to w, priced with res.
// Zero-amount line items are not printed.
func WriteQuotation(w io.Writer, doc *model.Document, res model.EstimateResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	q := &sheet{f: f}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: numFmtThousands})
	if err != nil {
		return fmt.Errorf("export: style: %w", err)
	}
	boldMoney, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: numFmtThousands})
	if err != nil {
		return fmt.Errorf("export: style: %w", err)
	}

	// header block, from the same inputs the totals were priced from
	fields, in := doc.Quoted()
	q.set(1, 1, "RENCANA ANGGARAN BIAYA")
	q.style(1, 1, 1, bold)
	header := [][2]string{
		{"No. Referensi", doc.ReferenceNumber},
		{"Proyek", fields.ProjectName},
		{"Klien", fields.ClientName},
		{"Tujuan", model.DestinationLabel(in.DestinationKey)},
		{"Alamat", fields.Address},
		{"Status", string(doc.Status)},
	}
	for i, kv := range header {
		q.set(1, 2+i, kv[0])
		q.set(2, 2+i, kv[1])
	}

	// item table
	for i, h := range itemHeaders {
		q.set(1+i, ItemHeaderRow, h)
	}
	q.style(1, len(itemHeaders), ItemHeaderRow, bold)

	row := ItemHeaderRow + 1
	for i, item := range res.NonZeroItems() {
		q.set(1, row, i+1)
		q.set(2, row, item.Desc)
		q.set(3, row, item.Qty)
		q.set(4, row, item.Unit)
		q.set(5, row, item.UnitPrice)
		q.set(6, row, item.Amount)
		q.style(5, 6, row, money)
		row++
	}

	row++
	totals := []struct {
		label  string
		amount int64
	}{
		{"Subtotal Dinding", res.WallSubtotal},
		{"Subtotal Lantai", res.FloorSubtotal},
		{"Ongkos Kirim", res.ShippingCost},
	}
	for _, t := range totals {
		q.set(5, row, t.label)
		q.set(6, row, t.amount)
		q.style(6, 6, row, money)
		row++
	}
	q.set(5, row, "TOTAL")
	q.set(6, row, res.GrandTotal)
	q.style(5, 5, row, bold)
	q.style(6, 6, row, boldMoney)

	if q.err != nil {
		return fmt.Errorf("export: %w", q.err)
	}

	for col, width := range map[string]float64{"A": 16, "B": 44, "C": 10, "D": 10, "E": 18, "F": 18} {
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("export: column width: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write: %w", err)
	}
	return nil
}

// sheet remembers the first cell error so the layout code stays linear.
type sheet struct {
	f   *excelize.File
	err error
}

func (s *sheet) set(col, row int, v any) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetCellValue(SheetName, cell, v)
}

func (s *sheet) style(fromCol, toCol, row, style int) {
	if s.err != nil {
		return
	}
	from, err := excelize.CoordinatesToCellName(fromCol, row)
	if err != nil {
		s.err = err
		return
	}
	to, err := excelize.CoordinatesToCellName(toCol, row)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetCellStyle(SheetName, from, to, style)
}

// Filename is the download name for doc's export.
func Filename(doc *model.Document) string {
	name := make([]rune, 0, len(doc.ReferenceNumber))
	for _, r := range doc.ReferenceNumber {
		if r == '/' {
			r = '-'
		}
		name = append(name, r)
	}
	return "RAB-" + string(name) + ".xlsx"
}
