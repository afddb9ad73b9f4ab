package controllers

import (
	"ventas-backend/database"
	"ventas-backend/middlewares"
	"ventas-backend/services"

	"github.com/gofiber/fiber/v2"
)

func CreateSalesNote(c *fiber.Ctx) error {
	var in services.SalesNoteInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	note, err := services.CreateSalesNote(database.DB, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "nota creada correctamente",
		"numero":  note.Numero,
		"total":   note.Total,
	})
}

type fromQuotationInput struct {
	CotizacionID uint   `json:"cotizacion_id" validate:"required"`
	FormaPago    string `json:"forma_pago" validate:"required"`
	TipoPrecio   string `json:"tipo_precio" validate:"required"`
}

// CreateSalesNoteFromQuotation runs the quotation's terminal transition and
// the note creation as one atomic unit inside the service.
func CreateSalesNoteFromQuotation(c *fiber.Ctx) error {
	var in fromQuotationInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	note, err := services.ConvertQuotation(database.DB, in.CotizacionID, in.FormaPago, in.TipoPrecio, "")
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "nota creada correctamente desde cotización",
		"numero":  note.Numero,
		"total":   note.Total,
	})
}

func GetSalesNotes(c *fiber.Ctx) error {
	rows, err := services.ListSalesNotes(database.DB)
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

func GetSalesNote(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	note, err := services.GetSalesNote(database.DB, id)
	if err != nil {
		return err
	}
	return c.JSON(note)
}

func UpdateSalesNote(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in services.SalesNoteInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	note, err := services.UpdateSalesNote(database.DB, id, in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "nota de venta actualizada correctamente",
		"numero":  note.Numero,
		"total":   note.Total,
	})
}

type voidInput struct {
	Motivo string `json:"motivo"`
}

func VoidSalesNote(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in voidInput
	_ = c.BodyParser(&in)

	if err := services.VoidSalesNote(database.DB, id, in.Motivo); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "nota anulada correctamente"})
}

func DeleteSalesNote(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := services.DeleteSalesNote(database.DB, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "nota de venta eliminada correctamente"})
}

func DownloadSalesNotePDF(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	note, err := services.GetSalesNote(database.DB, id)
	if err != nil {
		return err
	}
	if services.Renderer == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "renderer not configured")
	}

	buf, err := services.Renderer.RenderSalesNote(services.NoteDocument{
		Numero:      note.Numero,
		Fecha:       note.Fecha,
		Cliente:     note.Client,
		Items:       note.Items,
		Subtotal:    note.Subtotal,
		Total:       note.Total,
		FormaPago:   note.FormaPago,
		TipoPrecio:  note.TipoPrecio,
		Observacion: note.Observacion,
	})
	if err != nil {
		return services.InfraErr(err, "no se pudo generar el PDF")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=nota_venta_`+note.Numero+`.pdf`)
	return c.Send(buf)
}
