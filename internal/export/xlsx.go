package export

import (
	"fmt"
	"log/slog"
	"os"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/xuri/excelize/v2"

	"github.com/amishk599/jobsift/internal/model"
	"github.com/amishk599/jobsift/internal/triage"
)

// maxCellChars is the longest string a single XLSX cell accepts.
const maxCellChars = excelize.TotalCellChars

var headers = []string{"Company", "Title", "Link", "Description"}

// Exporter renders category stores as an XLSX workbook, one sheet per category.
type Exporter struct {
	logger *slog.Logger
}

func NewExporter(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{logger: logger}
}

// WriteFile writes the workbook for stores to path.
func (e *Exporter) WriteFile(path string, stores triage.Stores) error {
	data, err := e.XLSX(stores)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// XLSX returns the workbook bytes. Sheets follow the category order and keep
// each store's job order; heading markers are stripped from descriptions.
func (e *Exporter) XLSX(stores triage.Stores) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	rows := 0
	for i, c := range model.Categories {
		sheet := c.Label()
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return nil, fmt.Errorf("naming sheet %s: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("creating sheet %s: %w", sheet, err)
		}

		if err := writeSheet(f, sheet, stores.Get(c)); err != nil {
			return nil, err
		}
		rows += len(stores.Get(c))
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	e.logger.Debug("exported workbook",
		"rows", rows,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, jobs []model.Job) error {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("writing %s header: %w", sheet, err)
		}
	}

	for n, j := range jobs {
		row := n + 2
		desc := ""
		if j.HasDescription() {
			desc = truncate(ansi.Strip(*j.Description), maxCellChars)
		}
		for col, v := range []string{j.Company, j.Title, j.Link, desc} {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
			}
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 24) // company
	_ = f.SetColWidth(sheet, "B", "B", 40) // title
	_ = f.SetColWidth(sheet, "C", "C", 60) // link
	_ = f.SetColWidth(sheet, "D", "D", 80) // description
	return nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
