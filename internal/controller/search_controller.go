package controller

import (
	"strconv"

	"talent-search-be/internal/dto"
	"talent-search-be/internal/pkg/serverutils"
	"talent-search-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
	ListCandidates(ctx *fiber.Ctx) error
	ListTraits(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	ClearSession(ctx *fiber.Ctx) error
}

type searchController struct {
	service service.ISearchService
}

func NewSearchController(service service.ISearchService) ISearchController {
	return &searchController{service: service}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search/v1")
	h.Post("", c.Search)
	h.Get("/candidates", c.ListCandidates)
	h.Get("/traits", c.ListTraits)
	h.Get("/sessions/:id", c.GetSession)
	h.Delete("/sessions/:id", c.ClearSession)
}

func (c *searchController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Search(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process search", res))
}

func (c *searchController) ListCandidates(ctx *fiber.Ctx) error {
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))
	offset, _ := strconv.Atoi(ctx.Query("offset", "0"))

	candidates, total, err := c.service.ListCandidates(ctx.Context(), limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get candidates", fiber.Map{
		"candidates": candidates,
		"total":      total,
	}))
}

func (c *searchController) ListTraits(ctx *fiber.Ctx) error {
	traits, err := c.service.ListTraits(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get traits", traits))
}

func (c *searchController) GetSession(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")
	res := c.service.GetSessionContext(sessionId)
	return ctx.JSON(serverutils.SuccessResponse("Success get session context", res))
}

func (c *searchController) ClearSession(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")
	c.service.ClearSession(sessionId)
	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear session", nil))
}
