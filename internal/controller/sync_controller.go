package controller

import (
	"legis-catalog-client/internal/dto"
	"legis-catalog-client/internal/pkg/serverutils"
	"legis-catalog-client/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISyncController interface {
	RegisterRoutes(r fiber.Router)
	FetchPage(ctx *fiber.Ctx) error
	FetchRecent(ctx *fiber.Ctx) error
	Reconcile(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	RefreshSessions(ctx *fiber.Ctx) error
}

type syncController struct {
	syncService    service.ISyncService
	sessionService service.ISessionService
}

func NewSyncController(syncService service.ISyncService, sessionService service.ISessionService) ISyncController {
	return &syncController{
		syncService:    syncService,
		sessionService: sessionService,
	}
}

func (c *syncController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sync/v1")
	h.Post("page", c.FetchPage)
	h.Post("recent", c.FetchRecent)
	h.Post("reconcile", c.Reconcile)
	h.Post("sessions", c.RefreshSessions)
	h.Get("status", c.Status)
}

func (c *syncController) FetchPage(ctx *fiber.Ctx) error {
	var req dto.FetchPageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if req.Page == 0 {
		req.Page = 1
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.syncService.FetchPage(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success fetch page", res))
}

func (c *syncController) FetchRecent(ctx *fiber.Ctx) error {
	var req dto.FetchRecentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.syncService.FetchRecent(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}

func (c *syncController) Reconcile(ctx *fiber.Ctx) error {
	var req dto.ReconcileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.syncService.CheckForUpdates(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}

// Status is the navigation-warning signal: the frontend polls it and warns
// before leaving while any fetch is in flight.
func (c *syncController) Status(ctx *fiber.Ctx) error {
	active := c.syncService.ActiveFetches()
	res := dto.SyncStatusResponse{
		ActiveFetches:     active,
		WarnBeforeLeaving: len(active) > 0,
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get sync status", res))
}

func (c *syncController) RefreshSessions(ctx *fiber.Ctx) error {
	var req struct {
		Jurisdictions      []string `json:"jurisdictions" validate:"required,min=1"`
		IncludeAllSessions bool     `json:"includeAllSessions"`
	}
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.sessionService.Refresh(ctx.Context(), req.Jurisdictions, req.IncludeAllSessions); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success refresh sessions", nil))
}
