package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gammanotes-be/internal/dto"
	"gammanotes-be/internal/pkg/serverutils"
	"gammanotes-be/internal/service"
)

type IStudyController interface {
	RegisterRoutes(r fiber.Router)
	GenerateCards(ctx *fiber.Ctx) error
	GenerateGuide(ctx *fiber.Ctx) error
	ListCardSets(ctx *fiber.Ctx) error
	ShowCardSet(ctx *fiber.Ctx) error
	ShowGuide(ctx *fiber.Ctx) error
}

type studyController struct {
	service service.IStudyService
}

func NewStudyController(service service.IStudyService) IStudyController {
	return &studyController{service: service}
}

func (c *studyController) RegisterRoutes(r fiber.Router) {
	// Generation endpoints live directly under /api to match the client
	// contract.
	r.Post("/studycards", serverutils.JwtMiddleware, c.GenerateCards)
	r.Post("/studyguides", serverutils.JwtMiddleware, c.GenerateGuide)

	cards := r.Group("/studycards/v1")
	cards.Use(serverutils.JwtMiddleware)
	cards.Get("/", c.ListCardSets)
	cards.Get("/:id", c.ShowCardSet)

	guide := r.Group("/studyguide/v1")
	guide.Use(serverutils.JwtMiddleware)
	guide.Get("/:id", c.ShowGuide)
}

func (c *studyController) GenerateCards(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	var req dto.GenerateStudyCardsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GenerateCards(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *studyController) GenerateGuide(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	var req dto.GenerateStudyGuideRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GenerateGuide(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *studyController) ListCardSets(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	res, err := c.service.ListCardSets(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get card sets", res))
}

func (c *studyController) ShowCardSet(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequestError("Invalid card set id")
	}

	res, err := c.service.ShowCardSet(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get card set", res))
}

func (c *studyController) ShowGuide(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequestError("Invalid guide id")
	}

	res, err := c.service.ShowGuide(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get study guide", res))
}
