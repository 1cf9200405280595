package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/b2b-portal-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats devuelve los contadores de la empresa del llamante.
// GET /api/dashboard/stats
//
// Respuesta: DashboardStatsDTO con los ocho campos siempre presentes; el rol no
// cambia la forma. Qué mostrar a cada rol lo decide el cliente.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext(), GetCompanyID(c), GetRole(c))
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
