package services

import (
	"errors"
	"regexp"
	"strings"

	"ventas-backend/models"

	"gorm.io/gorm"
)

var soloNumeros = regexp.MustCompile(`^\d+$`)

// ClientInput is the inline client payload a document request may carry instead
// of an existing client id.
type ClientInput struct {
	Nombre         string `json:"nombre" validate:"required"`
	Identificacion string `json:"identificacion" validate:"omitempty,numeric"`
	Telefono       string `json:"telefono"`
	Email          string `json:"email" validate:"omitempty,email"`
	Direccion      string `json:"direccion"`
}

// ValidateIdentificacion checks a cedula (10 digits) or RUC (13 digits).
func ValidateIdentificacion(identificacion string) error {
	if !soloNumeros.MatchString(identificacion) {
		return ValidationErr("la identificación solo debe contener números")
	}
	if len(identificacion) != 10 && len(identificacion) != 13 {
		return ValidationErr("la identificación debe tener 10 dígitos (cédula) o 13 dígitos (RUC)")
	}
	return nil
}

// ResolveClient returns the client a document belongs to: by id when given,
// otherwise get-or-create keyed on identificacion so an existing client is
// reused rather than duplicated.
func ResolveClient(tx *gorm.DB, clientID uint, inline *ClientInput) (*models.Client, error) {
	if clientID != 0 {
		var c models.Client
		if err := tx.Take(&c, clientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NotFoundErr("cliente %d no existe", clientID)
			}
			return nil, InfraErr(err, "no se pudo consultar el cliente")
		}
		return &c, nil
	}

	if inline == nil || strings.TrimSpace(inline.Nombre) == "" {
		return nil, ValidationErr("se requiere cliente_id o datos del cliente")
	}

	ident := strings.TrimSpace(inline.Identificacion)
	if ident != "" {
		if err := ValidateIdentificacion(ident); err != nil {
			return nil, err
		}
		var existing models.Client
		err := tx.Where("identificacion = ?", ident).Take(&existing).Error
		if err == nil {
			return &existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, InfraErr(err, "no se pudo consultar el cliente")
		}
	}

	c := models.Client{
		Nombre:    strings.TrimSpace(inline.Nombre),
		Telefono:  inline.Telefono,
		Email:     inline.Email,
		Direccion: inline.Direccion,
	}
	if ident != "" {
		c.Identificacion = &ident
	}
	if err := tx.Create(&c).Error; err != nil {
		return nil, InfraErr(err, "no se pudo crear el cliente")
	}
	return &c, nil
}

// CheckIdentificacionFree fails with a conflict when another client (id !=
// excludeID) already holds the identification.
func CheckIdentificacionFree(tx *gorm.DB, identificacion string, excludeID uint) error {
	var count int64
	q := tx.Model(&models.Client{}).Where("identificacion = ?", identificacion)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return InfraErr(err, "no se pudo validar la identificación")
	}
	if count > 0 {
		return ConflictErr("ya existe un cliente registrado con esa identificación")
	}
	return nil
}
