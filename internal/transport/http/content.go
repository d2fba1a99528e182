package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"bio_showcase/internal/transport/http/dto"
	"bio_showcase/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

const maxListLimit = 500

// ListGallery godoc
// @Summary Элементы галереи, новые первыми
// @Param category query string false "Категория (all - без фильтра)"
// @Param limit query int false "Максимум записей"
// @Router /api/v1/gallery [get]
func (r *Routers) ListGallery(c echo.Context) error {
	const op = "http.routers.ListGallery"

	log := r.log.With(slog.String("op", op))

	limit, ok := queryLimit(c, "limit")
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "limit must be a non-negative integer"))
	}

	items, err := r.ContentService.ListGalleryItems(c.Request().Context(), c.QueryParam("category"), limit)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(nonNil(items)))
}

func (r *Routers) ListAwards(c echo.Context) error {
	const op = "http.routers.ListAwards"

	awards, err := r.ContentService.ListAwards(c.Request().Context())
	if err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(nonNil(awards)))
}

func (r *Routers) ListServices(c echo.Context) error {
	const op = "http.routers.ListServices"

	services, err := r.ContentService.ListServices(c.Request().Context())
	if err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(nonNil(services)))
}

func (r *Routers) ListAbout(c echo.Context) error {
	const op = "http.routers.ListAbout"

	sections, err := r.ContentService.ListAboutSections(c.Request().Context())
	if err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(nonNil(sections)))
}

// Админка: галерея

func (r *Routers) GetGalleryItem(c echo.Context) error {
	const op = "http.routers.GetGalleryItem"

	item, err := r.ContentService.GetGalleryItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(item))
}

func (r *Routers) CreateGalleryItem(c echo.Context) error {
	const op = "http.routers.CreateGalleryItem"

	log := r.log.With(slog.String("op", op))

	var req dto.GalleryItemRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}

	id, err := r.ContentService.CreateGalleryItem(c.Request().Context(), req.ToModel(""))
	if err != nil {
		return r.fail(c, log, err)
	}

	log.Info("gallery item created", slog.String("id", id))
	return c.JSON(http.StatusCreated, response.SuccessResponse(dto.CreatedResponse{ID: id}))
}

func (r *Routers) UpdateGalleryItem(c echo.Context) error {
	const op = "http.routers.UpdateGalleryItem"

	var req dto.GalleryItemRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}

	if err := r.ContentService.UpdateGalleryItem(c.Request().Context(), req.ToModel(c.Param("id"))); err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}
	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "gallery item updated"})
}

func (r *Routers) DeleteGalleryItem(c echo.Context) error {
	const op = "http.routers.DeleteGalleryItem"

	if err := r.ContentService.DeleteGalleryItem(c.Request().Context(), c.Param("id")); err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Админка: награды

func (r *Routers) GetAward(c echo.Context) error {
	const op = "http.routers.GetAward"

	award, err := r.ContentService.GetAward(c.Request().Context(), c.Param("id"))
	if err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(award))
}

func (r *Routers) CreateAward(c echo.Context) error {
	const op = "http.routers.CreateAward"

	log := r.log.With(slog.String("op", op))

	var req dto.AwardRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}

	id, err := r.ContentService.CreateAward(c.Request().Context(), req.ToModel(""))
	if err != nil {
		return r.fail(c, log, err)
	}

	log.Info("award created", slog.String("id", id))
	return c.JSON(http.StatusCreated, response.SuccessResponse(dto.CreatedResponse{ID: id}))
}

func (r *Routers) UpdateAward(c echo.Context) error {
	const op = "http.routers.UpdateAward"

	var req dto.AwardRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}

	if err := r.ContentService.UpdateAward(c.Request().Context(), req.ToModel(c.Param("id"))); err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}
	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "award updated"})
}

func (r *Routers) DeleteAward(c echo.Context) error {
	const op = "http.routers.DeleteAward"

	if err := r.ContentService.DeleteAward(c.Request().Context(), c.Param("id")); err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Админка: услуги

func (r *Routers) GetService(c echo.Context) error {
	const op = "http.routers.GetService"

	service, err := r.ContentService.GetService(c.Request().Context(), c.Param("id"))
	if err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(service))
}

func (r *Routers) CreateService(c echo.Context) error {
	const op = "http.routers.CreateService"

	log := r.log.With(slog.String("op", op))

	var req dto.ServiceRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}

	id, err := r.ContentService.CreateService(c.Request().Context(), req.ToModel(""))
	if err != nil {
		return r.fail(c, log, err)
	}

	log.Info("service created", slog.String("id", id))
	return c.JSON(http.StatusCreated, response.SuccessResponse(dto.CreatedResponse{ID: id}))
}

func (r *Routers) UpdateService(c echo.Context) error {
	const op = "http.routers.UpdateService"

	var req dto.ServiceRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}

	if err := r.ContentService.UpdateService(c.Request().Context(), req.ToModel(c.Param("id"))); err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}
	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "service updated"})
}

func (r *Routers) DeleteService(c echo.Context) error {
	const op = "http.routers.DeleteService"

	if err := r.ContentService.DeleteService(c.Request().Context(), c.Param("id")); err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Админка: о себе

func (r *Routers) GetAboutSection(c echo.Context) error {
	const op = "http.routers.GetAboutSection"

	section, err := r.ContentService.GetAboutSection(c.Request().Context(), c.Param("id"))
	if err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(section))
}

func (r *Routers) CreateAboutSection(c echo.Context) error {
	const op = "http.routers.CreateAboutSection"

	log := r.log.With(slog.String("op", op))

	var req dto.AboutSectionRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}

	id, err := r.ContentService.CreateAboutSection(c.Request().Context(), req.ToModel(""))
	if err != nil {
		return r.fail(c, log, err)
	}

	log.Info("about section created", slog.String("id", id))
	return c.JSON(http.StatusCreated, response.SuccessResponse(dto.CreatedResponse{ID: id}))
}

func (r *Routers) UpdateAboutSection(c echo.Context) error {
	const op = "http.routers.UpdateAboutSection"

	var req dto.AboutSectionRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}

	if err := r.ContentService.UpdateAboutSection(c.Request().Context(), req.ToModel(c.Param("id"))); err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}
	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "about section updated"})
}

func (r *Routers) DeleteAboutSection(c echo.Context) error {
	const op = "http.routers.DeleteAboutSection"

	if err := r.ContentService.DeleteAboutSection(c.Request().Context(), c.Param("id")); err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}
	return c.NoContent(http.StatusNoContent)
}

// queryLimit reads an optional non-negative integer, capped at maxListLimit.
func queryLimit(c echo.Context, name string) (int, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return min(n, maxListLimit), true
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
