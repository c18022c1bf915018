package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/ukaji3/catalogjson-go/pkg/catalog/models"
	"github.com/ukaji3/catalogjson-go/pkg/catalog/parser"
	"github.com/xuri/excelize/v2"
)

// Extract reads every sheet of the workbook at path into a Document.
// Sheets are processed in workbook order; a sheet that cannot be read is
// logged and recorded with no records.
func Extract(path string, opts Options) (*models.Document, error) {
	layout, err := opts.Layout()
	if err != nil {
		return nil, err
	}

	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return extractWorkbook(f, layout, opts), nil
}

// ExtractReader is like Extract but reads the workbook from r.
func ExtractReader(r io.Reader, opts Options) (*models.Document, error) {
	layout, err := opts.Layout()
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	defer f.Close()

	return extractWorkbook(f, layout, opts), nil
}

func openWorkbook(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFormat, path, err)
	}
	return f, nil
}

func extractWorkbook(f *excelize.File, layout parser.Layout, opts Options) *models.Document {
	log := opts.logger()

	sheetList := f.GetSheetList()
	log.Info("workbook opened", "sheets", len(sheetList),
		"header_row", layout.HeaderRow+1, "data_start_row", layout.DataStartRow+1)

	doc := &models.Document{}
	for _, sheetName := range sheetList {
		records, err := extractSheet(f, sheetName, layout, opts.SourceRowNumbers, log)
		if err != nil {
			log.Warn("sheet skipped", "error", err)
			records = nil
		}
		doc.Add(sheetName, records)
	}

	log.Info("extraction finished", "sheets", len(doc.Sheets), "records", doc.RecordCount())
	return doc
}

func extractSheet(f *excelize.File, sheetName string, layout parser.Layout, sourceRows bool, log *slog.Logger) ([]models.Record, error) {
	grid, err := parser.ReadGrid(f, sheetName)
	if err != nil {
		return nil, NewExtractionError(sheetName, "rows", err)
	}

	table := parser.NormalizeSheet(grid, layout)
	log.Debug("sheet read", "sheet", sheetName, "rows", len(grid), "columns", len(table.Columns))
	if len(table.Rows) == 0 {
		log.Info("sheet has no data rows", "sheet", sheetName, "rows", len(grid))
		return nil, nil
	}
	log.Debug("sheet columns", "sheet", sheetName, "names", table.Columns)

	records := parser.BuildRecords(table, layout, sheetName, sourceRows)
	log.Info("sheet extracted", "sheet", sheetName, "records", len(records))
	if log.Enabled(context.Background(), slog.LevelDebug) {
		for i := 0; i < len(records) && i < 5; i++ {
			log.Debug("record code", "sheet", sheetName, "n", i+1, "code", records[i].Code())
		}
	}
	return records, nil
}
