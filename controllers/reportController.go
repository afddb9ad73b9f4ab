package controllers

import (
	"fmt"
	"time"

	"ventas-backend/database"
	"ventas-backend/services"
	"ventas-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

func DailyReport(c *fiber.Ctx) error {
	r, err := services.GetDailyReport(database.DB, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(r)
}

// MonthlyReport triggers the one-time commission accrual on its first call in
// a month; later calls return the stored snapshot (ya_generado=true).
func MonthlyReport(c *fiber.Ctx) error {
	r, err := services.GetMonthlyReport(database.DB, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(r)
}

func DailyDetail(c *fiber.Ctx) error {
	rows, err := services.DailyDetail(database.DB, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

func MonthlyDetail(c *fiber.Ctx) error {
	rows, err := services.MonthlyDetail(database.DB, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

func MarkCommissionPaid(c *fiber.Ctx) error {
	if err := services.MarkCommissionPaid(database.DB, time.Now()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "comisión marcada como pagada correctamente"})
}

// ExportExcel writes the profit detail for a [desde, hasta] date range as an
// .xlsx workbook.
func ExportExcel(c *fiber.Ctx) error {
	desde := c.Query("desde")
	hasta := c.Query("hasta")
	if desde == "" || hasta == "" {
		return services.ValidationErr("debe enviar desde y hasta")
	}
	from, err := time.ParseInLocation("2006-01-02", desde, time.Local)
	if err != nil {
		return services.ValidationErr("fecha desde inválida")
	}
	until, err := time.ParseInLocation("2006-01-02", hasta, time.Local)
	if err != nil {
		return services.ValidationErr("fecha hasta inválida")
	}

	rows, err := services.ProfitDetail(database.DB, from, until.AddDate(0, 0, 1))
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Reporte"
	f.SetSheetName(f.GetSheetName(0), sheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	moneyFmt := `"$"#,##0.00`
	moneyStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})

	f.MergeCell(sheet, "A1", "F1")
	f.SetCellValue(sheet, "A1", "Reporte de ventas "+desde+" a "+hasta)
	f.SetCellStyle(sheet, "A1", "F1", titleStyle)

	headers := []string{"SERIE", "DESCRIPCIÓN", "CANTIDAD", "COSTO", "VENTA", "GANANCIA"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A3", "F3", headerStyle)
	f.SetColWidth(sheet, "B", "B", 40)

	var totalCosto, totalVenta, totalGanancia float64
	for i, r := range rows {
		row := i + 4
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Numero)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Producto)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Cantidad)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.CostoTotal)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Venta)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Ganancia)
		totalCosto += r.CostoTotal
		totalVenta += r.Venta
		totalGanancia += r.Ganancia
	}
	if len(rows) > 0 {
		f.SetCellStyle(sheet, "D4", fmt.Sprintf("F%d", len(rows)+3), moneyStyle)
	}

	totalRow := len(rows) + 5
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "Totales:")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", totalRow), utils.Round2(totalCosto))
	f.SetCellValue(sheet, fmt.Sprintf("E%d", totalRow), utils.Round2(totalVenta))
	f.SetCellValue(sheet, fmt.Sprintf("F%d", totalRow), utils.Round2(totalGanancia))
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("F%d", totalRow), headerStyle)
	f.SetCellStyle(sheet, fmt.Sprintf("D%d", totalRow), fmt.Sprintf("F%d", totalRow), moneyStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return services.InfraErr(err, "no se pudo generar el archivo")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=reporte_%s_%s.xlsx", desde, hasta))
	return c.Send(buf.Bytes())
}
