package services

import (
	"time"

	"ventas-backend/models"

	"gorm.io/gorm"
)

// DailyReport summarizes today's notes.
type DailyReport struct {
	NotasGeneradas int     `json:"notas_generadas"`
	TotalVendido   float64 `json:"total_vendido"`
	NotasAnuladas  int     `json:"notas_anuladas"`
}

// ProfitRow is one sold line with its cost, sale value and margin, used by the
// detail endpoints and the spreadsheet export.
type ProfitRow struct {
	Numero     string  `json:"numero"`
	Producto   string  `json:"producto"`
	Costo      float64 `json:"costo"`
	Cantidad   int     `json:"cantidad"`
	CostoTotal float64 `json:"costo_total"`
	Venta      float64 `json:"venta"`
	Ganancia   float64 `json:"ganancia"`
}

func dayWindow(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 0, 1)
}

// GetDailyReport counts today's notes and sums the active total.
func GetDailyReport(db *gorm.DB, now time.Time) (*DailyReport, error) {
	from, to := dayWindow(now)

	var r DailyReport
	err := db.Model(&models.SalesNote{}).
		Select(`COUNT(*) AS notas_generadas,
			COALESCE(SUM(CASE WHEN estado = 'ACTIVA' THEN total ELSE 0 END), 0) AS total_vendido,
			COALESCE(SUM(CASE WHEN estado = 'ANULADA' THEN 1 ELSE 0 END), 0) AS notas_anuladas`).
		Where("fecha >= ? AND fecha < ?", from, to).
		Scan(&r).Error
	if err != nil {
		return nil, InfraErr(err, "no se pudo calcular el reporte diario")
	}
	return &r, nil
}

// ProfitDetail returns the sold lines of ACTIVE notes in [from, to), oldest
// first, with margin against the product's current recorded cost.
func ProfitDetail(db *gorm.DB, from, to time.Time) ([]ProfitRow, error) {
	var rows []ProfitRow
	err := db.Model(&models.SalesNoteItem{}).
		Select(`sales_notes.numero AS numero,
			products.nombre AS producto,
			products.costo AS costo,
			sales_note_items.cantidad AS cantidad,
			products.costo * sales_note_items.cantidad AS costo_total,
			sales_note_items.subtotal AS venta,
			sales_note_items.subtotal - (products.costo * sales_note_items.cantidad) AS ganancia`).
		Joins("JOIN sales_notes ON sales_notes.id = sales_note_items.nota_venta_id").
		Joins("JOIN products ON products.id = sales_note_items.producto_id").
		Where("sales_notes.fecha >= ? AND sales_notes.fecha < ?", from, to).
		Where("sales_notes.estado = ?", models.SalesNoteActive).
		Order("sales_notes.fecha ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, InfraErr(err, "no se pudo calcular el detalle de ventas")
	}
	return rows, nil
}

// DailyDetail is ProfitDetail over today.
func DailyDetail(db *gorm.DB, now time.Time) ([]ProfitRow, error) {
	from, to := dayWindow(now)
	return ProfitDetail(db, from, to)
}

// MonthlyDetail is ProfitDetail over the current month.
func MonthlyDetail(db *gorm.DB, now time.Time) ([]ProfitRow, error) {
	from, to := monthWindow(now)
	return ProfitDetail(db, from, to)
}
