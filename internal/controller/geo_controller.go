package controller

import (
	"errors"

	"station-chat-be/internal/dto"
	"station-chat-be/internal/pkg/serverutils"
	"station-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGeoController interface {
	RegisterRoutes(r fiber.Router)
	GetCities(ctx *fiber.Ctx) error
	GetStations(ctx *fiber.Ctx) error
	GetStation(ctx *fiber.Ctx) error
	GetCoverage(ctx *fiber.Ctx) error
	PostSelection(ctx *fiber.Ctx) error
	PatchStatus(ctx *fiber.Ctx) error
	SearchStations(ctx *fiber.Ctx) error
}

type geoController struct {
	service service.IGeoService
}

func NewGeoController(service service.IGeoService) IGeoController {
	return &geoController{service: service}
}

func (c *geoController) RegisterRoutes(r fiber.Router) {
	g := r.Group("/geo")
	g.Get("/cities", c.GetCities)
	g.Get("/stations", c.GetStations)
	g.Get("/station/:id", c.GetStation)
	g.Get("/coverage", c.GetCoverage)
	g.Post("/selection", c.PostSelection)
	g.Patch("/station/:id/status", c.PatchStatus)

	db := r.Group("/db")
	db.Get("/stations/search", c.SearchStations)
}

func (c *geoController) GetCities(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Cities(ctx.Context()))
}

func (c *geoController) GetStations(ctx *fiber.Ctx) error {
	city := ctx.Query("city", "")
	if city == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "city parameter is required"))
	}
	return ctx.JSON(c.service.Stations(ctx.Context(), city))
}

func (c *geoController) GetStation(ctx *fiber.Ctx) error {
	st, err := c.service.Station(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return stationError(ctx, err)
	}
	return ctx.JSON(dto.StationResponse{Ok: true, Station: st})
}

func (c *geoController) GetCoverage(ctx *fiber.Ctx) error {
	stationId := ctx.Query("station_id", "")
	if stationId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "station_id parameter is required"))
	}
	res, err := c.service.Coverage(ctx.Context(), stationId)
	if err != nil {
		return stationError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *geoController) PostSelection(ctx *fiber.Ctx) error {
	var req dto.SelectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	st, err := c.service.Select(ctx.Context(), req.SessionId, req.StationId)
	if err != nil {
		return stationError(ctx, err)
	}
	return ctx.JSON(dto.StationResponse{Ok: true, Station: st})
}

func (c *geoController) PatchStatus(ctx *fiber.Ctx) error {
	var req dto.StatusUpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	st, err := c.service.UpdateStatus(ctx.Context(), ctx.Params("id"), req.Status)
	if err != nil {
		return stationError(ctx, err)
	}
	return ctx.JSON(dto.StationResponse{Ok: true, Station: st})
}

func (c *geoController) SearchStations(ctx *fiber.Ctx) error {
	res := c.service.Search(
		ctx.Context(),
		ctx.Query("q", ""),
		ctx.Query("vendor", ""),
		ctx.Query("band", ""),
		ctx.Query("status", ""),
		ctx.QueryInt("k", 20),
	)
	return ctx.JSON(res)
}

func stationError(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrStationNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(dto.StationResponse{Ok: false, Error: "station not found"})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
}
