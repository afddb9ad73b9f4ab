package models

import "time"

// Quotation states. CONVERTIDA is terminal.
const (
	QuotationActive    = "ACTIVA"
	QuotationConverted = "CONVERTIDA"
)

// Quotation is a non-binding priced offer. It never touches stock; stock is only
// affected when it is converted into a sales note.
type Quotation struct {
	Id       uint   `json:"id" gorm:"primaryKey"`
	Numero   string `json:"numero" gorm:"size:20;uniqueIndex"`
	ClientID uint   `json:"-" gorm:"column:cliente_id;not null"`
	Client   Client `json:"cliente" gorm:"foreignKey:ClientID;references:Id"`

	Items []QuotationItem `json:"productos" gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE"`
	Total float64         `json:"total" gorm:"type:numeric(12,2)"`

	Estado string    `json:"estado" gorm:"size:20;not null;default:ACTIVA"`
	Fecha  time.Time `json:"fecha" gorm:"autoCreateTime"`
}

// QuotationItem snapshots the list price at creation time; it is never recomputed.
type QuotationItem struct {
	Id          uint    `json:"id" gorm:"primaryKey"`
	QuotationID uint    `json:"-" gorm:"column:cotizacion_id;index"`
	ProductID   uint    `json:"producto_id" gorm:"column:producto_id;not null;index"`
	Product     Product `json:"-" gorm:"foreignKey:ProductID;references:Id;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`

	Cantidad       int     `json:"cantidad" gorm:"not null"`
	PrecioUnitario float64 `json:"precio_unitario" gorm:"type:numeric(12,2)"`
	Subtotal       float64 `json:"subtotal" gorm:"type:numeric(12,2)"`
}
