package document

import (
	"fmt"
	"io"
	"office-graph-api/model"
	"strings"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Content"

// XLSX renders a single "Content" sheet with a Title/Body header row and
// one row per section.
type XLSX struct{}

func (XLSX) Emit(w io.Writer, doc model.Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return fmt.Errorf("creating body style: %w", err)
	}

	if err := f.SetSheetRow(xlsxSheet, "A1", &[]interface{}{"Title", "Body"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", "B1", bold); err != nil {
		return err
	}

	for i, s := range doc.Sections {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &[]interface{}{s.Title, strings.Join(lines(s.Body), "\n")}); err != nil {
			return err
		}
	}
	if n := len(doc.Sections); n > 0 {
		last, err := excelize.CoordinatesToCellName(2, n+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(xlsxSheet, "A2", last, wrap); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(xlsxSheet, "A", "A", 30); err != nil {
		return err
	}
	if err := f.SetColWidth(xlsxSheet, "B", "B", 80); err != nil {
		return err
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   doc.Title,
		Creator: creator,
	}); err != nil {
		return fmt.Errorf("setting document properties: %w", err)
	}

	_, err = f.WriteTo(w)
	return err
}
