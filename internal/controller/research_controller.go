package controller

import (
	"errors"

	"market-research-be/internal/dto"
	"market-research-be/internal/pkg/serverutils"
	"market-research-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IResearchController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	Generate(ctx *fiber.Ctx) error
	ListModels(ctx *fiber.Ctx) error
}

type researchController struct {
	service service.IResearchService
}

func NewResearchController(service service.IResearchService) IResearchController {
	return &researchController{service: service}
}

func (c *researchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/research/v1")
	h.Post("/sessions", c.CreateSession)
	h.Get("/sessions/:id", c.GetSession)
	h.Post("/generate", c.Generate)
	h.Get("/models", c.ListModels)
}

func (c *researchController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.service.CreateSession(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *researchController) GetSession(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	res, err := c.service.GetSession(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, err.Error()))
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

func (c *researchController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Generate(ctx.Context(), &req)
	if err != nil {
		return c.mapPipelineError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate report", res))
}

func (c *researchController) ListModels(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get models", c.service.ListModels(ctx.Context())))
}

// mapPipelineError translates the service error taxonomy into HTTP
// status codes and the standard envelope.
func (c *researchController) mapPipelineError(ctx *fiber.Ctx, err error) error {
	var noResults *service.NoResultsError
	var retrievalErr *service.RetrievalError
	var generationErr *service.GenerationError

	switch {
	case errors.Is(err, service.ErrMissingIndustry):
		// Soft validation failure: the user just needs to type a name.
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.WarningResponse(fiber.StatusBadRequest, err.Error()))
	case errors.Is(err, service.ErrMissingCredential),
		errors.Is(err, service.ErrModelNotAllowed):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	case errors.Is(err, service.ErrSessionNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, err.Error()))
	case errors.As(err, &noResults):
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(fiber.StatusUnprocessableEntity, err.Error()))
	case errors.As(err, &retrievalErr), errors.As(err, &generationErr):
		return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(fiber.StatusBadGateway, err.Error()))
	default:
		return err
	}
}
