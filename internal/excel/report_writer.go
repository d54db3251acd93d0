package excel

import (
	"bytes"
	"fmt"

	"clinic-pos/internal/service"

	"github.com/xuri/excelize/v2"
)

// WriteSalesReport renders a sales report as an xlsx workbook with one sheet
// per section.
func WriteSalesReport(report *service.SalesReport) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	summarySheet := "Summary"
	if err := file.SetSheetName(file.GetSheetName(0), summarySheet); err != nil {
		return nil, fmt.Errorf("rename summary sheet: %w", err)
	}

	summaryRows := [][]interface{}{
		{"Period", report.Period},
		{"Total Revenue", report.TotalRevenue},
		{"Total Sales", report.TotalSales},
		{"Average Sale Value", report.AverageSaleValue},
		{"Total Customers", report.TotalCustomers},
		{"Total Medicines", report.TotalMedicines},
		{"Low Stock Items", len(report.LowStockMedicines)},
		{"Expiring Items", len(report.ExpiringMedicines)},
	}
	if err := writeRows(file, summarySheet, summaryRows); err != nil {
		return nil, err
	}

	topSheet := "Top Medicines"
	if _, err := file.NewSheet(topSheet); err != nil {
		return nil, fmt.Errorf("create sheet %s: %w", topSheet, err)
	}
	topRows := [][]interface{}{{"Medicine", "Units Sold", "Revenue"}}
	for _, m := range report.TopMedicines {
		topRows = append(topRows, []interface{}{m.Name, m.Quantity, m.Revenue})
	}
	if err := writeRows(file, topSheet, topRows); err != nil {
		return nil, err
	}

	stockSheet := "Stock Alerts"
	if _, err := file.NewSheet(stockSheet); err != nil {
		return nil, fmt.Errorf("create sheet %s: %w", stockSheet, err)
	}
	stockRows := [][]interface{}{{"Medicine", "Current Stock", "Min Stock", "Expiry Date"}}
	for _, m := range report.LowStockMedicines {
		stockRows = append(stockRows, []interface{}{m.Name, m.Quantity, m.MinStock, ""})
	}
	for _, m := range report.ExpiringMedicines {
		stockRows = append(stockRows, []interface{}{m.Name, m.Quantity, "", m.ExpiryDate})
	}
	if err := writeRows(file, stockSheet, stockRows); err != nil {
		return nil, err
	}

	dailySheet := "Daily Sales"
	if _, err := file.NewSheet(dailySheet); err != nil {
		return nil, fmt.Errorf("create sheet %s: %w", dailySheet, err)
	}
	dailyRows := [][]interface{}{{"Date", "Sales", "Revenue"}}
	for _, d := range report.DailySales {
		dailyRows = append(dailyRows, []interface{}{d.Date, d.Count, d.Revenue})
	}
	if err := writeRows(file, dailySheet, dailyRows); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeRows(file *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell coordinates: %w", err)
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
