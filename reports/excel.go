package reports

import (
	"fmt"
	"io"

	"github.com/Xfhreall/armaso-pos/services"
	"github.com/xuri/excelize/v2"
)

const (
	sheetDays  = "Harian"
	sheetItems = "Menu Terlaris"
)

// WeeklyExcel writes the weekly stats as an XLSX workbook with a day sheet and a
// top-items sheet.
func WeeklyExcel(w io.Writer, stats *services.WeeklyStats) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return err
	}

	writeRow := func(sheet string, row int, values ...interface{}) error {
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}
	writeHeaders := func(sheet string, headers ...interface{}) error {
		if err := writeRow(sheet, 1, headers...); err != nil {
			return err
		}
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		return f.SetCellStyle(sheet, "A1", last, headerStyle)
	}

	if err := f.SetSheetName("Sheet1", sheetDays); err != nil {
		return err
	}
	if err := writeHeaders(sheetDays, "Tanggal", "Hari", "Pesanan", "Pendapatan"); err != nil {
		return err
	}
	row := 2
	for _, d := range stats.Days {
		if err := writeRow(sheetDays, row, d.Date, d.Label, d.Orders, d.Revenue); err != nil {
			return err
		}
		row++
	}
	if err := writeRow(sheetDays, row, "TOTAL", "", stats.TotalOrders, stats.TotalRevenue); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetDays, "D2", fmt.Sprintf("D%d", row), moneyStyle); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetItems); err != nil {
		return err
	}
	if err := writeHeaders(sheetItems, "No", "Menu", "Jumlah", "Pendapatan"); err != nil {
		return err
	}
	for i, it := range stats.TopItems {
		if err := writeRow(sheetItems, i+2, i+1, it.Name, it.Quantity, it.Revenue); err != nil {
			return err
		}
	}
	if n := len(stats.TopItems); n > 0 {
		if err := f.SetCellStyle(sheetItems, "D2", fmt.Sprintf("D%d", n+1), moneyStyle); err != nil {
			return err
		}
	}

	for _, sheet := range []string{sheetDays, sheetItems} {
		if err := f.SetColWidth(sheet, "A", "B", 14); err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "C", "D", 16); err != nil {
			return err
		}
		if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, Split: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}
