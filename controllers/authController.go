package controllers

import (
	"errors"
	"net/mail"

	"ventas-backend/database"
	"ventas-backend/middlewares"
	"ventas-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type registerInput struct {
	Nombre          string `json:"nombre" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	Rol             string `json:"rol" validate:"omitempty,oneof=ADMIN DESARROLLADOR"`
}

func Register(c *fiber.Ctx) error {
	var in registerInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	if in.Password != in.PasswordConfirm {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "las contraseñas no coinciden"})
	}

	var exists models.User
	err := database.DB.Where("email = ?", in.Email).First(&exists).Error
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "el email ya está registrado"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	rol := in.Rol
	if rol == "" {
		rol = models.RolAdmin
	}
	user := models.User{
		Nombre: in.Nombre,
		Email:  in.Email,
		Rol:    rol,
	}
	user.SetPassword(in.Password)
	if err := database.DB.Create(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "no se pudo crear el usuario")
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func Login(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if _, err := mail.ParseAddress(data["email"]); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "formato de email inválido"})
	}

	var user models.User
	if err := database.DB.Where("email = ?", data["email"]).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "credenciales inválidas"})
	}
	if err := user.ComparePassword(data["password"]); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "credenciales inválidas"})
	}

	token, err := middlewares.GenerateJWT(user.Id, user.Rol)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "no se pudo generar el token")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"usuario": fiber.Map{
			"id":     user.Id,
			"nombre": user.Nombre,
			"email":  user.Email,
			"rol":    user.Rol,
		},
	})
}
