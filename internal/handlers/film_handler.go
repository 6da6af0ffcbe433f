package handlers

import (
	"film-catalog/internal/request"
	"film-catalog/internal/services"
	"film-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type FilmHandler struct {
	service services.FilmService
	logger  *logrus.Logger
}

func NewFilmHandler(service services.FilmService, logger *logrus.Logger) *FilmHandler {
	return &FilmHandler{
		service: service,
		logger:  logger,
	}
}

// GetAllFilms godoc
// @Summary Get all films
// @Description Get every film
// @Tags films
// @Produce json
// @Success 200 {array} models.Film "List of films"
// @Failure 400 {object} utils.MessageResponse "Database error"
// @Router /films [get]
func (h *FilmHandler) GetAllFilms(c *fiber.Ctx) error {
	films, err := h.service.GetAllFilms(c.UserContext())
	if err != nil {
		return utils.HandleError(c, h.logger, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, films)
}

// GetFilmByID godoc
// @Summary Get film by ID
// @Description Get a single film by its ID
// @Tags films
// @Produce json
// @Param id path int true "Film ID"
// @Success 200 {object} models.Film "Film"
// @Failure 404 {object} utils.MessageResponse "Film not found"
// @Router /films/{id} [get]
func (h *FilmHandler) GetFilmByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	film, err := h.service.GetFilmByID(c.UserContext(), id)
	if err != nil {
		return utils.HandleError(c, h.logger, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, film)
}

// CreateFilm godoc
// @Summary Create a film
// @Description Create a film together with its genre links. If a genre link cannot be stored the film is removed again.
// @Tags films
// @Accept json
// @Produce json
// @Param film body FilmRequest true "Film"
// @Success 201 {object} models.Film "Film created"
// @Failure 400 {object} utils.MessageResponse "Invalid request or database error"
// @Router /films [post]
func (h *FilmHandler) CreateFilm(c *fiber.Ctx) error {
	var req FilmRequest
	if err := request.Bind(c, &req); err != nil {
		return utils.HandleError(c, h.logger, err)
	}

	film, err := h.service.CreateFilm(c.UserContext(), services.FilmInput{
		Title:    req.Title,
		Year:     req.Year,
		GenreIDs: req.Genres,
	})
	if err != nil {
		return utils.HandleError(c, h.logger, err)
	}

	h.logger.WithField("film_id", film.ID).Info("Film created")
	return utils.SuccessResponse(c, fiber.StatusCreated, film)
}

// UpdateFilm godoc
// @Summary Update a film
// @Description Update a film and replace its genre set in one transaction. An empty genres list removes all genres.
// @Tags films
// @Accept json
// @Produce json
// @Param id path int true "Film ID"
// @Param film body FilmUpdateRequest true "Film"
// @Success 200 {object} models.Film "Film updated"
// @Failure 400 {object} utils.MessageResponse "Invalid request or database error"
// @Failure 404 {object} utils.MessageResponse "Film or genre not found"
// @Router /films/{id} [put]
func (h *FilmHandler) UpdateFilm(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req FilmUpdateRequest
	if err := request.Bind(c, &req); err != nil {
		return utils.HandleError(c, h.logger, err)
	}

	film, err := h.service.UpdateFilm(c.UserContext(), id, services.FilmInput{
		Title:    req.Title,
		Year:     req.Year,
		GenreIDs: req.Genres,
	})
	if err != nil {
		return utils.HandleError(c, h.logger, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, film)
}

// DeleteFilm godoc
// @Summary Delete a film
// @Description Delete a film and its genre links
// @Tags films
// @Produce json
// @Param id path int true "Film ID"
// @Success 200 {object} models.Film "Deleted film"
// @Failure 400 {object} utils.MessageResponse "Database error"
// @Failure 404 {object} utils.MessageResponse "Film not found"
// @Router /films/{id} [delete]
func (h *FilmHandler) DeleteFilm(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	film, err := h.service.DeleteFilm(c.UserContext(), id)
	if err != nil {
		return utils.HandleError(c, h.logger, err)
	}

	h.logger.WithField("film_id", film.ID).Info("Film deleted")
	return utils.SuccessResponse(c, fiber.StatusOK, film)
}

// GetPosterUploadURL godoc
// @Summary Get a presigned poster upload URL
// @Description Generate a presigned PUT URL for uploading a film poster to object storage
// @Tags films
// @Produce json
// @Param id path int true "Film ID"
// @Param filename query string true "Filename"
// @Param contentType query string false "Content Type" default(image/jpeg)
// @Success 200 {object} services.PosterUpload
// @Failure 400 {object} utils.MessageResponse "Missing filename"
// @Failure 404 {object} utils.MessageResponse "Film not found"
// @Failure 500 {object} utils.MessageResponse "Storage error"
// @Router /films/{id}/poster [get]
func (h *FilmHandler) GetPosterUploadURL(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	filename := c.Query("filename")
	if filename == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "filename is required")
	}
	contentType := c.Query("contentType", "image/jpeg")

	upload, err := h.service.PresignPosterUpload(c.UserContext(), id, filename, contentType)
	if err != nil {
		return utils.HandleError(c, h.logger, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, upload)
}
