package loader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"emistat/internal/table"
)

// worldBankSheet is the sheet World Bank XLSX exports carry the data in.
const worldBankSheet = "Data"

// LoadWorldBankXLSX reads a GDP or population source in the World Bank XLSX
// layout. The shaping matches LoadWorldBankCSV.
func LoadWorldBankXLSX(path string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(worldBankSheet)
	if err != nil {
		// Fall back to the first sheet when the export was renamed.
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("file %s has no sheets", path)
		}
		rows, err = f.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
	return shapeWorldBank(path, rows)
}
