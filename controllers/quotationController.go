package controllers

import (
	"ventas-backend/database"
	"ventas-backend/middlewares"
	"ventas-backend/services"

	"github.com/gofiber/fiber/v2"
)

func CreateQuotation(c *fiber.Ctx) error {
	var in services.QuotationInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	q, err := services.CreateQuotation(database.DB, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "cotización creada correctamente",
		"numero":  q.Numero,
		"total":   q.Total,
	})
}

func GetQuotations(c *fiber.Ctx) error {
	rows, err := services.ListQuotations(database.DB, c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

func GetQuotation(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	q, err := services.GetQuotation(database.DB, id)
	if err != nil {
		return err
	}
	return c.JSON(q)
}

func UpdateQuotation(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in services.QuotationInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	q, err := services.UpdateQuotation(database.DB, id, in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "cotización actualizada correctamente",
		"numero":  q.Numero,
		"total":   q.Total,
	})
}

type convertInput struct {
	FormaPago  string `json:"forma_pago"`
	TipoPrecio string `json:"tipo_precio"`
}

func ConvertQuotation(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in convertInput
	// Body is optional here; conversion defaults to EFECTIVO/PVP.
	_ = c.BodyParser(&in)

	note, err := services.ConvertQuotation(database.DB, id, in.FormaPago, in.TipoPrecio, "")
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":    "cotización convertida correctamente",
		"numeroNota": note.Numero,
		"total":      note.Total,
	})
}

func DeleteQuotation(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := services.DeleteQuotation(database.DB, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "cotización eliminada correctamente"})
}

// DownloadQuotationPDF renders the quotation on demand. Read-only; the
// renderer never touches core state.
func DownloadQuotationPDF(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	q, err := services.GetQuotation(database.DB, id)
	if err != nil {
		return err
	}
	if services.Renderer == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "renderer not configured")
	}

	buf, err := services.Renderer.RenderQuotation(services.QuotationDocument{
		Numero:  q.Numero,
		Fecha:   q.Fecha,
		Cliente: q.Client,
		Items:   q.Items,
		Total:   q.Total,
	})
	if err != nil {
		return services.InfraErr(err, "no se pudo generar el PDF")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=`+q.Numero+`.pdf`)
	return c.Send(buf)
}
