package handlers

import (
	"film-catalog/internal/request"
	"film-catalog/internal/services"
	"film-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type GenreHandler struct {
	service services.GenreService
	logger  *logrus.Logger
}

func NewGenreHandler(service services.GenreService, logger *logrus.Logger) *GenreHandler {
	return &GenreHandler{
		service: service,
		logger:  logger,
	}
}

// GetAllGenres godoc
// @Summary Get all genres
// @Tags genres
// @Produce json
// @Success 200 {array} models.Genre "List of genres"
// @Failure 400 {object} utils.MessageResponse "Database error"
// @Router /genres [get]
func (h *GenreHandler) GetAllGenres(c *fiber.Ctx) error {
	genres, err := h.service.GetAllGenres(c.UserContext())
	if err != nil {
		return utils.HandleError(c, h.logger, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, genres)
}

// GetGenreByID godoc
// @Summary Get genre by ID
// @Tags genres
// @Produce json
// @Param id path int true "Genre ID"
// @Success 200 {object} models.Genre "Genre"
// @Failure 404 {object} utils.MessageResponse "Genre not found"
// @Router /genres/{id} [get]
func (h *GenreHandler) GetGenreByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	genre, err := h.service.GetGenreByID(c.UserContext(), id)
	if err != nil {
		return utils.HandleError(c, h.logger, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, genre)
}

// CreateGenre godoc
// @Summary Create a genre
// @Tags genres
// @Accept json
// @Produce json
// @Param genre body GenreRequest true "Genre"
// @Success 201 {object} models.Genre "Genre created"
// @Failure 400 {object} utils.MessageResponse "Invalid request or database error"
// @Router /genres [post]
func (h *GenreHandler) CreateGenre(c *fiber.Ctx) error {
	var req GenreRequest
	if err := request.Bind(c, &req); err != nil {
		return utils.HandleError(c, h.logger, err)
	}

	genre, err := h.service.CreateGenre(c.UserContext(), req.Name)
	if err != nil {
		return utils.HandleError(c, h.logger, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, genre)
}

// UpdateGenre godoc
// @Summary Rename a genre
// @Tags genres
// @Accept json
// @Produce json
// @Param id path int true "Genre ID"
// @Param genre body GenreRequest true "Genre"
// @Success 200 {object} models.Genre "Genre updated"
// @Failure 400 {object} utils.MessageResponse "Invalid request or database error"
// @Failure 404 {object} utils.MessageResponse "Genre not found"
// @Router /genres/{id} [put]
func (h *GenreHandler) UpdateGenre(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req GenreRequest
	if err := request.Bind(c, &req); err != nil {
		return utils.HandleError(c, h.logger, err)
	}

	genre, err := h.service.UpdateGenre(c.UserContext(), id, req.Name)
	if err != nil {
		return utils.HandleError(c, h.logger, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, genre)
}

// DeleteGenre godoc
// @Summary Delete a genre
// @Description Delete a genre. Genres still linked to a film cannot be deleted.
// @Tags genres
// @Produce json
// @Param id path int true "Genre ID"
// @Success 200 {object} models.Genre "Deleted genre"
// @Failure 404 {object} utils.MessageResponse "Genre not found"
// @Failure 409 {object} utils.MessageResponse "Genre is referenced by a film"
// @Router /genres/{id} [delete]
func (h *GenreHandler) DeleteGenre(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	genre, err := h.service.DeleteGenre(c.UserContext(), id)
	if err != nil {
		return utils.HandleError(c, h.logger, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, genre)
}
