package models

import "time"

// Client is a retail customer. Identificacion is optional (walk-in sales),
// but when present it must be a 10-digit cedula or 13-digit RUC and unique.
type Client struct {
	Id             uint    `json:"id" gorm:"primaryKey"`
	Identificacion *string `json:"identificacion" gorm:"size:13;uniqueIndex"`
	Nombre         string  `json:"nombre" gorm:"not null"`
	Telefono       string  `json:"telefono"`
	Email          string  `json:"email"`
	Direccion      string  `json:"direccion"`

	CreatedAt time.Time `json:"created_at"`
}
