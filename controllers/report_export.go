package controllers

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pulizieapp/cleaning-planner/models"
	"github.com/pulizieapp/cleaning-planner/utils"
)

var reportHeader = []string{
	"ID", "Name", "Date", "Start", "Status", "Payment", "Price", "Favorite", "Employees", "Notes",
}

// buildOrdersWorkbook renders the orders report sheet and returns the xlsx
// bytes.
func buildOrdersWorkbook(orders []models.Order) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Orders"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, header := range reportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	widths := []float64{8, 30, 12, 8, 12, 12, 12, 10, 30, 40}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return nil, err
		}
	}

	for i, o := range orders {
		row := i + 2

		start := ""
		if o.StartTime != nil {
			start = *o.StartTime
		}
		price := ""
		if o.Price != nil {
			price = utils.FormatPrice(*o.Price)
		}
		notes := ""
		if o.Notes != nil {
			notes = *o.Notes
		}
		names := make([]string, 0, len(o.Employees))
		for _, e := range o.Employees {
			names = append(names, e.FullName())
		}

		values := []interface{}{
			o.ID, o.Name, o.CleaningDate, start, o.Status, o.PaymentStatus,
			price, o.IsFavorite, strings.Join(names, ", "), notes,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
