package controller

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gammanotes-be/internal/dto"
	"gammanotes-be/internal/pkg/serverutils"
	"gammanotes-be/internal/service"
)

type IConvertController interface {
	RegisterRoutes(r fiber.Router)
	ConvertPdf(ctx *fiber.Ctx) error
}

type convertController struct {
	service service.IConvertService
}

func NewConvertController(service service.IConvertService) IConvertController {
	return &convertController{service: service}
}

func (c *convertController) RegisterRoutes(r fiber.Router) {
	r.Post("/convert/pdf", serverutils.JwtMiddleware, c.ConvertPdf)
}

// ConvertPdf keeps its own error shape instead of the global envelope
// because the upload client expects {error, details, text} bodies.
func (c *convertController) ConvertPdf(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	header, err := ctx.FormFile("file")
	if err != nil {
		return convertError(ctx, serverutils.NewBadRequestError("Missing file"), "the file form field is required")
	}

	f, err := header.Open()
	if err != nil {
		return convertError(ctx, serverutils.NewBadRequestError("Could not read file"), err.Error())
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return convertError(ctx, serverutils.NewBadRequestError("Could not read file"), err.Error())
	}

	isChunk := ctx.FormValue("isChunk") == "true"
	isFinal := ctx.FormValue("isFinal") == "true"
	chunkId := ctx.FormValue("chunkId")
	chunkSeq, _ := strconv.Atoi(ctx.FormValue("chunkSeq"))

	text, success, err := c.service.Convert(ctx.Context(), userId, data, isChunk, isFinal, chunkId, chunkSeq)
	if err != nil {
		return convertError(ctx, err, "")
	}

	return ctx.JSON(dto.ConvertResponse{Text: text, Success: success})
}

func convertError(ctx *fiber.Ctx, err error, details string) error {
	status := fiber.StatusInternalServerError
	message := "Conversion failed"

	var appErr *serverutils.AppError
	if errors.As(err, &appErr) {
		status = appErr.Status
		message = appErr.Message
	}
	if details == "" {
		details = err.Error()
	}

	return ctx.Status(status).JSON(dto.ConvertErrorResponse{
		Error:   message,
		Details: details,
		Text:    nil,
	})
}
