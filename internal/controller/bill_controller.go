package controller

import (
	"legis-catalog-client/internal/dto"
	"legis-catalog-client/internal/pkg/serverutils"
	"legis-catalog-client/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBillController interface {
	RegisterRoutes(r fiber.Router)
	UpdateCategory(ctx *fiber.Ctx) error
	AddHighlight(ctx *fiber.Ctx) error
	RemoveHighlight(ctx *fiber.Ctx) error
	SetReviewed(ctx *fiber.Ctx) error
}

type billController struct {
	mutationService service.IMutationService
}

func NewBillController(mutationService service.IMutationService) IBillController {
	return &billController{
		mutationService: mutationService,
	}
}

func (c *billController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/bill/v1")
	h.Patch(":id/category", c.UpdateCategory)
	h.Post(":id/highlight", c.AddHighlight)
	h.Delete(":id/highlight", c.RemoveHighlight)
	h.Put(":id/reviewed", c.SetReviewed)
}

func (c *billController) UpdateCategory(ctx *fiber.Ctx) error {
	var req dto.UpdateCategoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.mutationService.SetCategory(ctx.Context(), ctx.Params("id"), req.Category); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update category", nil))
}

func (c *billController) AddHighlight(ctx *fiber.Ctx) error {
	if err := c.mutationService.SetHighlight(ctx.Context(), ctx.Params("id"), true); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add highlight", nil))
}

func (c *billController) RemoveHighlight(ctx *fiber.Ctx) error {
	if err := c.mutationService.SetHighlight(ctx.Context(), ctx.Params("id"), false); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success remove highlight", nil))
}

func (c *billController) SetReviewed(ctx *fiber.Ctx) error {
	var req dto.SetReviewedRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.mutationService.SetReviewed(ctx.Context(), ctx.Params("id"), req.Reviewed); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update reviewed", nil))
}
