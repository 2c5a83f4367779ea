package export

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/leora/backend/internal/model"
)

func sampleDocument() *model.Document {
	return &model.Document{
		ReferenceNumber: "003/SPB/LEORA/I/2025",
		Status:          model.StatusSent,
		DocumentFields: model.DocumentFields{
			ProjectName: "Gudang Cimahi",
			ClientName:  "PT Maju Jaya",
			Address:     "Jl. Soekarno-Hatta 12",
		},
		EstimateInput: model.EstimateInput{DestinationKey: "Jawa Barat|Kota Bandung"},
	}
}

func sampleResult() model.EstimateResult {
	return model.EstimateResult{
		WallSubtotal: 21506000,
		ShippingCost: 3000000,
		GrandTotal:   24506000,
		Items: []model.LineItem{
			{Desc: "Panel dinding Leora Wall 75", Qty: 44, Unit: model.UnitSheet, UnitPrice: 150000, Amount: 6600000},
			{Desc: "Jasa pemasangan dinding", Qty: 72, Unit: model.UnitArea, UnitPrice: 200000, Amount: 14400000},
			{Desc: "Joint & angkur dinding", Qty: 220, Unit: model.UnitPoint, UnitPrice: 2300, Amount: 506000},
			{Desc: "Jasa pemasangan lantai", Qty: 0, Unit: model.UnitArea, UnitPrice: 200000, Amount: 0},
			{Desc: "Ongkos kirim ke Jawa Barat, Kota Bandung", Qty: 1, Unit: model.UnitLumpSum, UnitPrice: 3000000, Amount: 3000000},
		},
	}
}

func TestWriteQuotation(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteQuotation(&buf, sampleDocument(), sampleResult()); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 1 || got[0] != SheetName {
		t.Fatalf("expected single sheet %q, got %v", SheetName, got)
	}

	cell := func(name string) string {
		t.Helper()
		v, err := f.GetCellValue(SheetName, name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return v
	}
	if got := cell("B2"); got != "003/SPB/LEORA/I/2025" {
		t.Errorf("expected reference number, got %q", got)
	}
	if got := cell("B5"); got != "Jawa Barat, Kota Bandung" {
		t.Errorf("expected destination label, got %q", got)
	}
	if got := cell("B9"); got != "Uraian" {
		t.Errorf("expected item header, got %q", got)
	}

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	var descs []string
	for _, r := range rows[ItemHeaderRow:] {
		if len(r) > 1 && r[1] != "" {
			descs = append(descs, r[1])
		}
	}
	if len(descs) != 4 {
		t.Fatalf("expected 4 printed items (zero-amount dropped), got %v", descs)
	}
	for _, d := range descs {
		if d == "Jasa pemasangan lantai" {
			t.Error("zero-amount item should not be exported")
		}
	}

	last := rows[len(rows)-1]
	if len(last) < 6 || last[4] != "TOTAL" {
		t.Fatalf("expected TOTAL row last, got %v", last)
	}
	raw, err := f.GetCellValue(SheetName, "F"+strconv.Itoa(len(rows)), excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("read total: %v", err)
	}
	if raw != "24506000" {
		t.Errorf("expected grand total 24506000, got %q", raw)
	}
}

func TestWriteQuotation_HeaderFollowsSnapshot(t *testing.T) {
	doc := sampleDocument()
	doc.Snapshot = &model.Snapshot{
		DocumentFields: doc.DocumentFields,
		EstimateInput:  doc.EstimateInput,
		EstimateResult: sampleResult(),
	}
	// edited after sending
	doc.ClientName = "PT Lain"
	doc.Province = "Bali"
	doc.DestinationKey = "Bali"

	var buf bytes.Buffer
	if err := WriteQuotation(&buf, doc, doc.Snapshot.EstimateResult); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	if v, _ := f.GetCellValue(SheetName, "B4"); v != "PT Maju Jaya" {
		t.Errorf("expected client from snapshot, got %q", v)
	}
	if v, _ := f.GetCellValue(SheetName, "B5"); v != "Jawa Barat, Kota Bandung" {
		t.Errorf("expected destination from snapshot, got %q", v)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename(sampleDocument()); got != "RAB-003-SPB-LEORA-I-2025.xlsx" {
		t.Errorf("unexpected filename %q", got)
	}
}
