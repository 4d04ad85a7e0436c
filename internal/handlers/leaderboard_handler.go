package handlers

import (
	"github.com/gofiber/fiber/v2"

	"qna_workspace/services"
)

type LeaderboardHandler struct {
	Svc *services.LeaderboardService
}

// GET /leaderboard
// @Summary Top contributors ranked by points
// @Tags leaderboard
// @Produce json
// @Success 200 {array} services.LeaderboardEntry
// @Router /leaderboard [get]
func (h *LeaderboardHandler) List(c *fiber.Ctx) error {
	entries, err := h.Svc.Snapshot(c.Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(entries)
}
