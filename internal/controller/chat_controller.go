package controller

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gammanotes-be/internal/dto"
	"gammanotes-be/internal/pkg/serverutils"
	"gammanotes-be/internal/service"
	"gammanotes-be/pkg/completion"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

// The chat endpoint lives directly under /api to match the client contract,
// unlike the versioned resource groups.
func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", serverutils.JwtMiddleware, c.Chat)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	req := dto.ChatRequest{
		Message:  ctx.FormValue("message"),
		Language: ctx.FormValue("language"),
	}
	if raw := ctx.FormValue("pageId"); raw != "" {
		pageId, err := uuid.Parse(raw)
		if err != nil {
			return serverutils.NewBadRequestError("Invalid pageId")
		}
		req.PageId = &pageId
	}

	files, err := readUploadedFiles(ctx, "files")
	if err != nil {
		return err
	}

	res, err := c.service.Ingest(ctx.Context(), userId, &req, files)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

// readUploadedFiles drains every multipart part under the given field name
// into memory. Fiber already enforces the body limit before we get here.
func readUploadedFiles(ctx *fiber.Ctx, field string) ([]completion.File, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		// A plain form without file parts is fine.
		return nil, nil
	}

	headers := form.File[field]
	files := make([]completion.File, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return nil, serverutils.NewBadRequestError("Could not read uploaded file " + header.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, serverutils.NewBadRequestError("Could not read uploaded file " + header.Filename)
		}
		files = append(files, completion.File{
			Name: header.Filename,
			MIME: header.Header.Get("Content-Type"),
			Data: data,
		})
	}
	return files, nil
}
