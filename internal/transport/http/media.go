package http

import (
	"log/slog"
	"net/http"

	"bio_showcase/internal/lib/logger/sl"
	media "bio_showcase/internal/services/media_service"
	"bio_showcase/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// UploadMedia godoc
// @Summary Загрузка изображения на хостинг
// @Accept multipart/form-data
// @Param file formData file true "Изображение"
// @Param folder formData string false "Папка (gallery, awards, services, about)"
// @Router /api/v1/admin/media/upload [post]
func (r *Routers) UploadMedia(c echo.Context) error {
	const op = "http.routers.UploadMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Warn("file is required", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("failed to open upload", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	defer file.Close()

	result, err := r.MediaService.Upload(c.Request().Context(), media.UploadInput{
		Filename: fileHeader.Filename,
		Folder:   c.FormValue("folder"),
		Body:     file,
	})
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(result))
}

// DeleteMedia removes an uploaded file by the key returned from UploadMedia.
func (r *Routers) DeleteMedia(c echo.Context) error {
	const op = "http.routers.DeleteMedia"

	key := c.Param("*")
	if key == "" {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "key is required"))
	}

	if err := r.MediaService.Delete(c.Request().Context(), key); err != nil {
		return r.fail(c, r.log.With(slog.String("op", op)), err)
	}
	return c.NoContent(http.StatusNoContent)
}
