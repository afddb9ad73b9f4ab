package models

import "time"

// MonthlyCommission is a point-in-time snapshot keyed by (anio, mes). It is
// written at most once per month and never recomputed, even if more notes are
// issued afterwards. Pagado is a one-way transition.
type MonthlyCommission struct {
	Id   uint `json:"id" gorm:"primaryKey"`
	Anio int  `json:"anio" gorm:"not null;index:idx_comisiones_anio_mes,unique,priority:1"`
	Mes  int  `json:"mes" gorm:"not null;index:idx_comisiones_anio_mes,unique,priority:2"`

	NotasGeneradas int     `json:"notas_generadas" gorm:"not null"`
	TarifaAplicada float64 `json:"tarifa_aplicada" gorm:"type:numeric(5,2)"`
	TotalComision  float64 `json:"total_comision" gorm:"type:numeric(12,2)"`

	Pagado    bool       `json:"pagado" gorm:"not null;default:false"`
	FechaPago *time.Time `json:"fecha_pago"`

	CreatedAt time.Time `json:"created_at"`
}
