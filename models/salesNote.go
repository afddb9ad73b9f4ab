package models

import "time"

// Sales note states. ANULADA is terminal.
const (
	SalesNoteActive = "ACTIVA"
	SalesNoteVoided = "ANULADA"
)

// Payment price tiers a note can be sold under (see Product price columns).
const (
	TierEfectivo = "EFECTIVO"
	TierPvp      = "PVP"
	TierCred10   = "CRED_10"
	TierCred15   = "CRED_15"
)

// SalesNote is a finalized sale. Creating one decrements product stock; voiding
// restores exactly the recorded line quantities.
type SalesNote struct {
	Id            uint   `json:"id" gorm:"primaryKey"`
	Numero        string `json:"numero" gorm:"size:20;uniqueIndex"`
	ClientID      uint   `json:"-" gorm:"column:cliente_id;not null"`
	Client        Client `json:"cliente" gorm:"foreignKey:ClientID;references:Id"`
	ClienteNombre string `json:"cliente_nombre"`

	Items    []SalesNoteItem `json:"productos" gorm:"foreignKey:SalesNoteID;constraint:OnDelete:CASCADE"`
	Subtotal float64         `json:"subtotal" gorm:"type:numeric(12,2)"`
	Total    float64         `json:"total" gorm:"type:numeric(12,2)"`

	FormaPago   string `json:"forma_pago" gorm:"size:30;not null"`
	TipoPrecio  string `json:"tipo_precio" gorm:"size:20;not null"`
	Observacion string `json:"observacion"`

	Estado          string     `json:"estado" gorm:"size:20;not null;default:ACTIVA"`
	MotivoAnulacion string     `json:"motivo_anulacion"`
	FechaAnulacion  *time.Time `json:"fecha_anulacion"`

	Fecha time.Time `json:"fecha" gorm:"autoCreateTime;index"`
}

// SalesNoteItem records the caller-supplied unit price at sale time. Void and
// stock reconciliation always use Cantidad as persisted here, never a recomputed
// value, so unrelated concurrent stock changes are not clobbered.
type SalesNoteItem struct {
	Id          uint    `json:"id" gorm:"primaryKey"`
	SalesNoteID uint    `json:"-" gorm:"column:nota_venta_id;index"`
	ProductID   uint    `json:"producto_id" gorm:"column:producto_id;not null;index"`
	Product     Product `json:"-" gorm:"foreignKey:ProductID;references:Id;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`

	Cantidad       int     `json:"cantidad" gorm:"not null"`
	PrecioUnitario float64 `json:"precio_unitario" gorm:"type:numeric(12,2)"`
	Subtotal       float64 `json:"subtotal" gorm:"type:numeric(12,2)"`
}
