package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tourism-poi-service/internal/pkg/utils"
	"github.com/tourism-poi-service/internal/pkg/validator"
	"github.com/tourism-poi-service/internal/usecase"
	"github.com/tourism-poi-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// POIHandler - обработчик запросов POI
type POIHandler struct {
	poiUC  *usecase.POIUseCase
	logger *zap.Logger
}

// NewPOIHandler - создание нового POIHandler
func NewPOIHandler(poiUC *usecase.POIUseCase, logger *zap.Logger) *POIHandler {
	return &POIHandler{
		poiUC:  poiUC,
		logger: logger,
	}
}

// SearchByRadius - загрузка нормализованных POI в радиусе вокруг точки
// @Summary POI в радиусе
// @Tags poi
// @Accept json
// @Produce json
// @Param request body dto.RadiusPOIRequest true "Центр, радиус и лимит"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/radius/poi [post]
func (h *POIHandler) SearchByRadius(c *fiber.Ctx) error {
	var req dto.RadiusPOIRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	pois, err := h.poiUC.LoadPOIsInRadius(c.Context(), req.Lng, req.Lat, req.RadiusKm, req.Limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, pois, &utils.Meta{
		Total: len(pois),
	})
}

// LoadAll - загрузка POI без фильтра по радиусу
// @Summary Все POI (с опциональным лимитом)
// @Tags poi
// @Accept json
// @Produce json
// @Param request body dto.AllPOIRequest true "Лимит"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/poi/all [post]
func (h *POIHandler) LoadAll(c *fiber.Ctx) error {
	var req dto.AllPOIRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	pois, err := h.poiUC.LoadAllPOIs(c.Context(), req.Limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, pois, &utils.Meta{
		Total: len(pois),
	})
}

// GetStats - метаданные индекса без загрузки тел POI
// @Summary Статистика индекса POI
// @Tags poi
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/poi/stats [get]
func (h *POIHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.poiUC.GetPOIStats(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stats, nil)
}
