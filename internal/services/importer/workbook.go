package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/magabrotheeeer/publication-admin/internal/lib/apperr"
)

// ReadWorkbook читает строки первого листа книги. Значения ячеек берутся как есть,
// без применения числовых форматов.
func ReadWorkbook(r io.Reader) ([][]string, error) {
	const op = "importer.ReadWorkbook"
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.Invalidf("failed to parse workbook: %v", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: %w", op, apperr.Invalidf("workbook has no sheets"))
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rows, nil
}
