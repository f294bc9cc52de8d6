package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tourism-poi-service/internal/domain"
	"github.com/tourism-poi-service/internal/pkg/utils"
	"github.com/tourism-poi-service/internal/pkg/validator"
	"github.com/tourism-poi-service/internal/usecase"
	"github.com/tourism-poi-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// NavigationHandler - обработчик команд навигации аватара
type NavigationHandler struct {
	simulator *usecase.NavigationSimulator
	logger    *zap.Logger
}

// NewNavigationHandler - создание нового NavigationHandler
func NewNavigationHandler(simulator *usecase.NavigationSimulator, logger *zap.Logger) *NavigationHandler {
	return &NavigationHandler{
		simulator: simulator,
		logger:    logger,
	}
}

// Navigate - запрос маршрута и старт движения к цели
// @Summary Навигация к точке
// @Tags navigation
// @Accept json
// @Produce json
// @Param request body dto.NavigateRequest true "Текущая позиция и цель"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/navigation/navigate [post]
func (h *NavigationHandler) Navigate(c *fiber.Ctx) error {
	var req dto.NavigateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if req.Follow != nil {
		h.simulator.SetFollowMode(*req.Follow)
	}

	current := domain.Coordinate{Lng: req.Lng, Lat: req.Lat}
	state := h.simulator.NavigateToPOI(c.Context(), current, req.TargetLng, req.TargetLat)

	return utils.SendSuccess(c, state, nil)
}

// Stop - безусловная остановка движения
// @Summary Остановка навигации
// @Tags navigation
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/navigation/stop [post]
func (h *NavigationHandler) Stop(c *fiber.Ctx) error {
	state := h.simulator.Stop()
	return utils.SendSuccess(c, state, nil)
}

// GetState - снимок состояния навигации
// @Summary Состояние навигации
// @Tags navigation
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/navigation/state [get]
func (h *NavigationHandler) GetState(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.simulator.State(), nil)
}
