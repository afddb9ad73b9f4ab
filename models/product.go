package models

import "time"

// Product carries the catalog cost plus the four derived sale prices.
// Prices are only ever written by the pricing rule (services.ComputePrices);
// stock is only ever written by the stock ledger.
type Product struct {
	Id       uint    `json:"id" gorm:"primaryKey"`
	Codigo   string  `json:"codigo" gorm:"size:10;uniqueIndex"`
	Nombre   string  `json:"nombre" gorm:"not null"`
	Costo    float64 `json:"costo" gorm:"type:numeric(12,2)"`
	Efectivo float64 `json:"efectivo" gorm:"type:numeric(12,2)"`
	Pvp      float64 `json:"pvp" gorm:"type:numeric(12,2)"`
	Cred10   float64 `json:"cred_10" gorm:"column:cred_10;type:numeric(12,2)"`
	Cred15   float64 `json:"cred_15" gorm:"column:cred_15;type:numeric(12,2)"`
	Stock    int     `json:"stock" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
