package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tourism-poi-service/internal/infrastructure/mapsurface"
	"github.com/tourism-poi-service/internal/pkg/utils"
	"go.uber.org/zap"
)

// MapHandler - выдача буферизованного состояния поверхности карты
type MapHandler struct {
	surface *mapsurface.Buffer
	logger  *zap.Logger
}

// NewMapHandler - создание нового MapHandler
func NewMapHandler(surface *mapsurface.Buffer, logger *zap.Logger) *MapHandler {
	return &MapHandler{
		surface: surface,
		logger:  logger,
	}
}

// GetState - снимок источников и камеры для тонкого клиента карты
// @Summary Состояние поверхности карты
// @Tags map
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/map/state [get]
func (h *MapHandler) GetState(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.surface.State(), nil)
}
