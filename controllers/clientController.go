package controllers

import (
	"strings"

	"ventas-backend/database"
	"ventas-backend/middlewares"
	"ventas-backend/models"
	"ventas-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CreateClient(c *fiber.Ctx) error {
	var in services.ClientInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	ident := strings.TrimSpace(in.Identificacion)
	if ident != "" {
		if err := services.ValidateIdentificacion(ident); err != nil {
			return err
		}
		if err := services.CheckIdentificacionFree(database.DB, ident, 0); err != nil {
			return err
		}
	}

	client := models.Client{
		Nombre:    strings.TrimSpace(in.Nombre),
		Telefono:  in.Telefono,
		Email:     in.Email,
		Direccion: in.Direccion,
	}
	if ident != "" {
		client.Identificacion = &ident
	}
	if err := database.DB.Create(&client).Error; err != nil {
		return services.InfraErr(err, "no se pudo crear el cliente")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "cliente creado correctamente",
		"cliente": client,
	})
}

func GetClients(c *fiber.Ctx) error {
	var clients []models.Client
	if err := database.DB.Order("created_at DESC").Find(&clients).Error; err != nil {
		return services.InfraErr(err, "no se pudieron listar los clientes")
	}
	return c.JSON(clients)
}

func GetClient(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var client models.Client
	if err := database.DB.Take(&client, id).Error; err != nil {
		return services.NotFoundErr("cliente no encontrado")
	}
	return c.JSON(client)
}

func GetClientByIdentificacion(c *fiber.Ctx) error {
	var client models.Client
	err := database.DB.Where("identificacion = ?", c.Params("identificacion")).Take(&client).Error
	if err != nil {
		return services.NotFoundErr("cliente no encontrado")
	}
	return c.JSON(client)
}

func UpdateClient(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in services.ClientInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	ident := strings.TrimSpace(in.Identificacion)
	if ident != "" {
		if err := services.ValidateIdentificacion(ident); err != nil {
			return err
		}
		if err := services.CheckIdentificacionFree(database.DB, ident, id); err != nil {
			return err
		}
	}

	updates := map[string]any{
		"nombre":    strings.TrimSpace(in.Nombre),
		"telefono":  in.Telefono,
		"email":     in.Email,
		"direccion": in.Direccion,
	}
	if ident != "" {
		updates["identificacion"] = ident
	} else {
		updates["identificacion"] = gorm.Expr("NULL")
	}

	res := database.DB.Model(&models.Client{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return services.InfraErr(res.Error, "no se pudo actualizar el cliente")
	}
	if res.RowsAffected == 0 {
		return services.NotFoundErr("cliente no encontrado")
	}
	return c.JSON(fiber.Map{"message": "cliente actualizado correctamente"})
}

func DeleteClient(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var refs int64
	if err := database.DB.Model(&models.Quotation{}).Where("cliente_id = ?", id).Count(&refs).Error; err != nil {
		return services.InfraErr(err, "no se pudo verificar las referencias del cliente")
	}
	if refs > 0 {
		return services.IntegrityErr("no se puede eliminar el cliente porque tiene cotizaciones asociadas")
	}
	if err := database.DB.Model(&models.SalesNote{}).Where("cliente_id = ?", id).Count(&refs).Error; err != nil {
		return services.InfraErr(err, "no se pudo verificar las referencias del cliente")
	}
	if refs > 0 {
		return services.IntegrityErr("no se puede eliminar el cliente porque tiene notas de venta asociadas")
	}

	res := database.DB.Delete(&models.Client{}, id)
	if res.Error != nil {
		return services.InfraErr(res.Error, "no se pudo eliminar el cliente")
	}
	if res.RowsAffected == 0 {
		return services.NotFoundErr("cliente no encontrado")
	}
	return c.JSON(fiber.Map{"message": "cliente eliminado correctamente"})
}
