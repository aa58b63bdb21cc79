package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"reputation-bot/internal/features/reputation"
)

// handleListReputations отдаёт все записи, отсортированные по убыванию балла.
// Без авторизации и пагинации.
func (s *Server) handleListReputations(c echo.Context) error {
	records, err := s.reputations.List(c.Request().Context())
	if err != nil {
		log.WithError(err).Error("Не удалось получить список репутаций")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load reputations")
	}

	// Пустой список должен сериализоваться как [], а не null
	if records == nil {
		records = []reputation.Reputation{}
	}
	return c.JSON(http.StatusOK, records)
}

func (s *Server) handleLiveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
