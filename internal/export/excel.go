package export

import (
	"fmt"
	"io"

	"github.com/harnesslab/wiremes/internal/apiserver/database"
	"github.com/xuri/excelize/v2"
)

const lotSheet = "Lots"
const oqcSheet = "OQC"

// WriteLots renders inventory lots as an xlsx workbook
func WriteLots(w io.Writer, lots []*database.Lot) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), lotSheet)

	headers := []string{"ID", "Serial", "Part No", "Qty", "Location", "Status", "Created At"}
	if err := writeHeader(f, lotSheet, headers); err != nil {
		return err
	}

	for i, lot := range lots {
		row := i + 2
		cells := []interface{}{
			lot.ID,
			lot.Serial,
			lot.PartNo,
			lot.Qty.String(),
			lot.Location,
			string(lot.Status),
			lot.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writeRow(f, lotSheet, row, cells); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// WriteOQCRequests renders OQC inspections as an xlsx workbook
func WriteOQCRequests(w io.Writer, reqs []*database.OQCRequest) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), oqcSheet)

	headers := []string{"ID", "Lot ID", "Sample Qty", "Result", "Inspected By", "Inspected At"}
	if err := writeHeader(f, oqcSheet, headers); err != nil {
		return err
	}

	for i, req := range reqs {
		inspectedAt := ""
		if req.InspectedAt != nil {
			inspectedAt = req.InspectedAt.Format("2006-01-02 15:04:05")
		}
		row := i + 2
		cells := []interface{}{
			req.ID,
			req.LotID,
			req.SampleQty.String(),
			string(req.Result),
			req.InspectedBy,
			inspectedAt,
		}
		if err := writeRow(f, oqcSheet, row, cells); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	for i, v := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}
