package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tourism-poi-service/internal/pkg/utils"
	"github.com/tourism-poi-service/internal/pkg/validator"
	"github.com/tourism-poi-service/internal/usecase"
	"github.com/tourism-poi-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// ClusterHandler - обработчик геометрии кластеров
type ClusterHandler struct {
	poiUC     *usecase.POIUseCase
	clusterUC *usecase.ClusterUseCase
	logger    *zap.Logger
}

// NewClusterHandler - создание нового ClusterHandler
func NewClusterHandler(
	poiUC *usecase.POIUseCase,
	clusterUC *usecase.ClusterUseCase,
	logger *zap.Logger,
) *ClusterHandler {
	return &ClusterHandler{
		poiUC:     poiUC,
		clusterUC: clusterUC,
		logger:    logger,
	}
}

// GetFeatures - POI области, агрегированные в точечные фичи для карты
// @Summary Геометрия кластеров POI
// @Tags clusters
// @Accept json
// @Produce json
// @Param request body dto.ClusterFeaturesRequest true "Центр, радиус и лимит"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/clusters/features [post]
func (h *ClusterHandler) GetFeatures(c *fiber.Ctx) error {
	var req dto.ClusterFeaturesRequest
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

	fc := h.clusterUC.ToFeatureCollection(pois)

	return utils.SendSuccess(c, fc, &utils.Meta{
		Total: len(fc.Features),
	})
}
