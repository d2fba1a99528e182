package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	feedsvc "bio_showcase/internal/services/feed_service"
	"bio_showcase/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// Feed godoc
// @Summary Объединенная лента изображений
// @Param category query string false "Категория или группа (gallery, awards, services, about)"
// @Param q query string false "Поиск по названию, описанию, категории"
// @Param limit query int false "Сколько записей показать"
// @Param refresh query bool false "Перечитать источники"
// @Router /api/v1/feed [get]
func (r *Routers) Feed(c echo.Context) error {
	const op = "http.routers.Feed"

	log := r.log.With(slog.String("op", op))

	limit, ok := queryLimit(c, "limit")
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "limit must be a non-negative integer"))
	}

	refresh := false
	if raw := c.QueryParam("refresh"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "refresh must be a boolean"))
		}
		refresh = v
	}

	page, err := r.FeedService.View(c.Request().Context(), feedsvc.FeedQuery{
		Category: strings.TrimSpace(c.QueryParam("category")),
		Search:   strings.TrimSpace(c.QueryParam("q")),
		Limit:    limit,
		Refresh:  refresh,
	})
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(page))
}

func (r *Routers) FeedCategories(c echo.Context) error {
	const op = "http.routers.FeedCategories"

	chips, err := r.FeedService.Categories(c.Request().Context())
	if err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(chips))
}
