package controller

import (
	"legis-catalog-client/internal/dto"
	"legis-catalog-client/internal/pkg/serverutils"
	"legis-catalog-client/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	View(ctx *fiber.Ctx) error
	SetFilters(ctx *fiber.Ctx) error
	Filters(ctx *fiber.Ctx) error
	Sessions(ctx *fiber.Ctx) error
}

type catalogController struct {
	catalogService service.ICatalogService
}

func NewCatalogController(catalogService service.ICatalogService) ICatalogController {
	return &catalogController{
		catalogService: catalogService,
	}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/catalog/v1")
	h.Get("", c.View)
	h.Get("filters", c.Filters)
	h.Put("filters", c.SetFilters)
	h.Get("sessions", c.Sessions)
}

func (c *catalogController) View(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	res := c.catalogService.View(page)
	return ctx.JSON(serverutils.SuccessResponse("Success get catalog view", res))
}

func (c *catalogController) SetFilters(ctx *fiber.Ctx) error {
	var req dto.SetFiltersRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.catalogService.SetFilters(&req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update filters", res))
}

func (c *catalogController) Filters(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get filters", c.catalogService.Filters()))
}

func (c *catalogController) Sessions(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get sessions", c.catalogService.Sessions()))
}
