package export

import (
	"fmt"

	"github.com/KaramelBytes/strokestat-cli/internal/dataset"
	"github.com/KaramelBytes/strokestat-cli/internal/query"
	"github.com/KaramelBytes/strokestat-cli/internal/utils"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet results are written to.
const SheetName = "Results"

// SaveXLSX writes r as a single-sheet workbook, adding a .xlsx extension
// when missing. Numeric cells stay numeric.
func SaveXLSX(path string, r query.Result, headers ...string) (string, error) {
	path = withExt(path, ".xlsx")
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return path, fmt.Errorf("rename sheet: %w", err)
	}

	t := Tabulate(r, headers...)
	if t.IsText() {
		if err := f.SetCellValue(SheetName, "A1", t.Text); err != nil {
			return path, err
		}
	} else {
		if err := setRow(f, 1, stringsToCells(t.Header)); err != nil {
			return path, err
		}
		for i, row := range t.Rows {
			if err := setRow(f, i+2, row); err != nil {
				return path, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return path, fmt.Errorf("encode xlsx: %w", err)
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return path, err
	}
	return path, nil
}

func setRow(f *excelize.File, rowIdx int, cells []any) error {
	for c, v := range cells {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(c+1, rowIdx)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, xlsxValue(v)); err != nil {
			return err
		}
	}
	return nil
}

func xlsxValue(v any) any {
	switch x := v.(type) {
	case dataset.Value:
		if n, ok := x.Number(); ok {
			return n
		}
		return x.String()
	case string, int, int64, float64:
		return x
	default:
		return cellText(x)
	}
}
