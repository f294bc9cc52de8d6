package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/paulmach/orb/geojson"
	"github.com/tourism-poi-service/internal/pkg/errors"
	"github.com/tourism-poi-service/internal/pkg/utils"
	"github.com/tourism-poi-service/internal/pkg/validator"
	"github.com/tourism-poi-service/internal/usecase"
	"github.com/tourism-poi-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// TrekHandler - обработчик маршрутов треков
type TrekHandler struct {
	trekUC *usecase.TrekUseCase
	logger *zap.Logger
}

// NewTrekHandler - создание нового TrekHandler
func NewTrekHandler(trekUC *usecase.TrekUseCase, logger *zap.Logger) *TrekHandler {
	return &TrekHandler{
		trekUC: trekUC,
		logger: logger,
	}
}

// GetRoute - линия маршрута трека из его собственной записи
// @Summary Геометрия маршрута трека
// @Tags trek
// @Accept json
// @Produce json
// @Param request body dto.TrekRouteRequest true "Путь к записи и источник"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/trek/route [post]
func (h *TrekHandler) GetRoute(c *fiber.Ctx) error {
	var req dto.TrekRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	fc, err := h.trekUC.GetTrekRoute(c.Context(), req.FilePath, req.Source)
	if err != nil {
		// Нехватка геометрии не фатальна: маршрут просто не рисуется
		if err == errors.ErrGeometryInsufficient {
			return utils.SendSuccess(c, geojson.NewFeatureCollection(), &utils.Meta{
				Warning: "trek record carries insufficient route geometry",
			})
		}
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fc, nil)
}
