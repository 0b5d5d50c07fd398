// Package render fills the fixed-layout xlsx invoice template with named
// field values and saves one document per invoice. The composer treats it as
// an opaque rendering service.
package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"invoicer/internal/logger"
)

// Fields holds the values written into the invoice template. String-typed
// throughout: the composer decides formatting, the renderer only places.
type Fields struct {
	InvoiceNumber string
	Description   string
	IssueDate     string
	DueDate       string
	WeekNumber    string
	Hours         string
	HourlyRate    string // pre-formatted, e.g. "€ 1,234.50"
	Name          string
	Address       string
	City          string
	PostalCountry string // "postal code, country", or empty
	PhoneNumber   string
}

// cellMap returns the cell positions in the invoice template. The layout is
// fixed; a different template means a different build of this table.
func cellMap(f Fields) map[string]string {
	return map[string]string{
		"B22": f.Description,
		"F12": f.InvoiceNumber,
		"C22": f.IssueDate,
		"B9":  f.IssueDate,
		"D22": f.WeekNumber,
		"E22": f.Hours,
		"F22": f.HourlyRate,
		"B12": f.Name,
		"B13": f.Address,
		"B14": f.City,
		"B15": f.PostalCountry,
		"B16": f.PhoneNumber,
		"F17": f.DueDate,
	}
}

// Service renders invoice documents from a single xlsx template.
type Service struct {
	templatePath string
	outputDir    string
	log          zerolog.Logger
}

// NewService verifies the template exists and returns a renderer writing
// documents into outputDir.
func NewService(templatePath, outputDir string) (*Service, error) {
	if _, err := os.Stat(templatePath); err != nil {
		return nil, &RenderError{Op: "NewService", Path: templatePath, Err: ErrMissingTemplate}
	}
	return &Service{
		templatePath: templatePath,
		outputDir:    outputDir,
		log:          logger.WithComponent("render"),
	}, nil
}

// Render loads a fresh copy of the template, writes the field values into
// their cells and saves the document as invoice_<number>_<name>.xlsx in the
// output directory. It returns the absolute path of the saved document.
func (s *Service) Render(fields Fields) (string, error) {
	const op = "Render"

	book, err := excelize.OpenFile(s.templatePath)
	if err != nil {
		return "", &RenderError{Op: op, Path: s.templatePath, Err: err}
	}
	defer book.Close()

	sheet := book.GetSheetName(book.GetActiveSheetIndex())

	for cell, value := range cellMap(fields) {
		if err := s.setCell(book, sheet, cell, value); err != nil {
			return "", &RenderError{Op: op, Path: s.templatePath, Err: err}
		}
	}

	outPath, err := filepath.Abs(filepath.Join(s.outputDir,
		fmt.Sprintf("invoice_%s_%s.xlsx", fields.InvoiceNumber, fields.Name)))
	if err != nil {
		return "", &RenderError{Op: op, Err: err}
	}

	if err := book.SaveAs(outPath); err != nil {
		s.log.Error().
			Err(err).
			Str("file", outPath).
			Msg("Failed to save rendered invoice")
		return "", &RenderError{Op: op, Path: outPath, Err: ErrDocumentWrite}
	}

	s.log.Info().
		Str("invoice_number", fields.InvoiceNumber).
		Str("file", outPath).
		Msg("Invoice document rendered")

	return outPath, nil
}

// setCell writes one cell, unmerging any merged region covering it first.
// Writing into a merged region otherwise fails or lands in the wrong anchor.
func (s *Service) setCell(book *excelize.File, sheet, cell string, value string) error {
	merged, err := book.GetMergeCells(sheet)
	if err != nil {
		return err
	}
	for _, region := range merged {
		inside, err := cellInRange(cell, region.GetStartAxis(), region.GetEndAxis())
		if err != nil {
			return err
		}
		if inside {
			s.log.Debug().
				Str("cell", cell).
				Str("range", region.GetStartAxis()+":"+region.GetEndAxis()).
				Msg("Unmerging region before cell write")
			if err := book.UnmergeCell(sheet, region.GetStartAxis(), region.GetEndAxis()); err != nil {
				return err
			}
			break
		}
	}
	return book.SetCellValue(sheet, cell, value)
}

func cellInRange(cell, start, end string) (bool, error) {
	col, row, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return false, err
	}
	startCol, startRow, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return false, err
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return false, err
	}
	return col >= startCol && col <= endCol && row >= startRow && row <= endRow, nil
}
