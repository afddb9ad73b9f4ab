package services

import (
	"errors"
	"os"
	"time"

	"ventas-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Commission rate bands by monthly note count.
var commissionBands = []struct {
	min, max int // max zero => open-ended
	rate     decimal.Decimal
}{
	{1, 199, dec("0.20")},
	{200, 499, dec("0.18")},
	{500, 0, dec("0.15")},
}

// CommissionForCount derives the applied rate and the total (count x rate,
// 2 decimals) for a monthly note count. Zero notes means zero commission.
func CommissionForCount(count int) (rate, total float64) {
	if count <= 0 {
		return 0, 0
	}
	var r decimal.Decimal
	for _, b := range commissionBands {
		if count >= b.min && (b.max == 0 || count <= b.max) {
			r = b.rate
			break
		}
	}
	t := decimal.NewFromInt(int64(count)).Mul(r).Round(2)
	return r.InexactFloat64(), t.InexactFloat64()
}

// MonthlyReport is the monthly summary plus the commission snapshot.
type MonthlyReport struct {
	NotasGeneradas int     `json:"notas_generadas"`
	NotasActivas   int     `json:"notas_activas"`
	NotasAnuladas  int     `json:"notas_anuladas"`
	TotalVendido   float64 `json:"total_vendido"`
	TarifaAplicada float64 `json:"tarifa_aplicada"`
	TotalComision  float64 `json:"total_comision"`
	YaGenerado     bool    `json:"ya_generado"`
}

// monthWindow returns [first day of month, first day of next month).
func monthWindow(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 1, 0)
}

// GetMonthlyReport computes the current month's summary and, on the first
// request of the month, snapshots the commission over ALL notes issued that
// month (active and voided alike). Later requests return the stored snapshot
// unchanged regardless of notes created afterwards. Two concurrent first
// requests are resolved by the unique (anio, mes) index with a
// conflict-tolerant insert, not by the existence check alone.
func GetMonthlyReport(db *gorm.DB, now time.Time) (*MonthlyReport, error) {
	anio, mes := now.Year(), int(now.Month())
	from, to := monthWindow(now)

	var report MonthlyReport
	var freshlyCreated bool
	err := db.Transaction(func(tx *gorm.DB) error {
		type agg struct {
			NotasGeneradas int
			NotasActivas   int
			NotasAnuladas  int
			TotalVendido   float64
		}
		var a agg
		err := tx.Model(&models.SalesNote{}).
			Select(`COUNT(*) AS notas_generadas,
				COALESCE(SUM(CASE WHEN estado = 'ACTIVA' THEN 1 ELSE 0 END), 0) AS notas_activas,
				COALESCE(SUM(CASE WHEN estado = 'ANULADA' THEN 1 ELSE 0 END), 0) AS notas_anuladas,
				COALESCE(SUM(CASE WHEN estado = 'ACTIVA' THEN total ELSE 0 END), 0) AS total_vendido`).
			Where("fecha >= ? AND fecha < ?", from, to).
			Scan(&a).Error
		if err != nil {
			return InfraErr(err, "no se pudo calcular el reporte mensual")
		}
		report.NotasGeneradas = a.NotasGeneradas
		report.NotasActivas = a.NotasActivas
		report.NotasAnuladas = a.NotasAnuladas
		report.TotalVendido = a.TotalVendido

		var existing models.MonthlyCommission
		err = tx.Where("anio = ? AND mes = ?", anio, mes).Take(&existing).Error
		if err == nil {
			report.TarifaAplicada = existing.TarifaAplicada
			report.TotalComision = existing.TotalComision
			report.YaGenerado = true
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return InfraErr(err, "no se pudo consultar la comisión")
		}

		rate, total := CommissionForCount(a.NotasGeneradas)
		row := models.MonthlyCommission{
			Anio:           anio,
			Mes:            mes,
			NotasGeneradas: a.NotasGeneradas,
			TarifaAplicada: rate,
			TotalComision:  total,
		}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "anio"}, {Name: "mes"}},
			DoNothing: true,
		}).Create(&row)
		if res.Error != nil {
			return InfraErr(res.Error, "no se pudo guardar la comisión")
		}
		if res.RowsAffected == 0 {
			// Lost the race to a concurrent first-of-month request; serve theirs.
			if err := tx.Where("anio = ? AND mes = ?", anio, mes).Take(&existing).Error; err != nil {
				return InfraErr(err, "no se pudo consultar la comisión")
			}
			report.TarifaAplicada = existing.TarifaAplicada
			report.TotalComision = existing.TotalComision
			report.YaGenerado = true
			return nil
		}

		report.TarifaAplicada = rate
		report.TotalComision = total
		report.YaGenerado = false
		freshlyCreated = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if freshlyCreated {
		notifyCommission(CommissionDocument{
			Anio:           anio,
			Mes:            mes,
			NotasGeneradas: report.NotasGeneradas,
			TarifaAplicada: report.TarifaAplicada,
			TotalComision:  report.TotalComision,
		}, os.Getenv("COMMISSION_EMAIL"))
	}
	return &report, nil
}

// MarkCommissionPaid flips pagado=false->true for the current month. The
// transition is one-way; callers must hold the developer role (enforced at the
// routing layer). Fails when the month has no snapshot yet or is already paid.
func MarkCommissionPaid(db *gorm.DB, now time.Time) error {
	anio, mes := now.Year(), int(now.Month())

	var paid models.MonthlyCommission
	err := db.Transaction(func(tx *gorm.DB) error {
		var row models.MonthlyCommission
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("anio = ? AND mes = ?", anio, mes).Take(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ConflictErr("no hay comisión generada para este mes")
			}
			return InfraErr(err, "no se pudo consultar la comisión")
		}
		if row.Pagado {
			return ConflictErr("la comisión ya fue marcada como pagada")
		}

		now := time.Now()
		updates := map[string]any{"pagado": true, "fecha_pago": &now}
		if err := tx.Model(&row).Updates(updates).Error; err != nil {
			return InfraErr(err, "no se pudo marcar la comisión como pagada")
		}
		paid = row
		return nil
	})
	if err != nil {
		return err
	}

	notifyCommission(CommissionDocument{
		Anio:           paid.Anio,
		Mes:            paid.Mes,
		NotasGeneradas: paid.NotasGeneradas,
		TarifaAplicada: paid.TarifaAplicada,
		TotalComision:  paid.TotalComision,
	}, os.Getenv("COMMISSION_EMAIL"))
	return nil
}
