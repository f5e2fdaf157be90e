package wanted

import (
	"errors"

	wantedsvc "isoko-backend/internal/application/wanted"
	"isoko-backend/internal/domain"
	"isoko-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *wantedsvc.Service
}

// POST /api/v1/wanted/reveal-contact
func (h *Handlers) RevealContact(c *fiber.Ctx) error {
	var body struct {
		MatchID          string `json:"match_id"`
		PaymentConfirmed bool   `json:"payment_confirmed"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	matchID, err := uuid.Parse(body.MatchID)
	if err != nil {
		return response.Error(c, "Invalid match_id format", 400, nil)
	}

	result, err := h.Service.RevealContact(c.Context(), matchID, body.PaymentConfirmed)
	if err != nil {
		if errors.Is(err, domain.ErrMatchNotFound) {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Reveal processed", result, nil)
}
