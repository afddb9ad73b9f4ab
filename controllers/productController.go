package controllers

import (
	"strconv"

	"ventas-backend/database"
	"ventas-backend/middlewares"
	"ventas-backend/models"
	"ventas-backend/services"

	"github.com/gofiber/fiber/v2"
)

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func CreateProduct(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	product, err := services.CreateProduct(database.DB, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "producto creado correctamente",
		"codigo":   product.Codigo,
		"producto": product,
	})
}

func GetProducts(c *fiber.Ctx) error {
	var products []models.Product
	if err := database.DB.Order("created_at DESC").Find(&products).Error; err != nil {
		return services.InfraErr(err, "no se pudieron listar los productos")
	}
	return c.JSON(products)
}

func GetProduct(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var product models.Product
	if err := database.DB.Take(&product, id).Error; err != nil {
		return services.NotFoundErr("producto no encontrado")
	}
	return c.JSON(product)
}

func GetProductByCodigo(c *fiber.Ctx) error {
	var product models.Product
	if err := database.DB.Where("codigo = ?", c.Params("codigo")).Take(&product).Error; err != nil {
		return services.NotFoundErr("producto no encontrado")
	}
	return c.JSON(product)
}

func UpdateProduct(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in services.ProductInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	product, err := services.UpdateProduct(database.DB, id, in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":  "producto actualizado correctamente",
		"producto": product,
	})
}

func DeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := services.DeleteProduct(database.DB, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "producto eliminado correctamente"})
}
