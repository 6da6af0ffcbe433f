package handlers

import (
	"film-catalog/internal/models"
	"film-catalog/internal/request"
	"film-catalog/internal/services"
	"film-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type FilmGenreHandler struct {
	service services.FilmGenreService
	logger  *logrus.Logger
}

func NewFilmGenreHandler(service services.FilmGenreService, logger *logrus.Logger) *FilmGenreHandler {
	return &FilmGenreHandler{
		service: service,
		logger:  logger,
	}
}

// GetAllFilmGenres godoc
// @Summary Get all film-genre links
// @Tags film-genres
// @Produce json
// @Success 200 {array} models.FilmGenre "List of links"
// @Failure 400 {object} utils.MessageResponse "Database error"
// @Router /films/genres [get]
func (h *FilmGenreHandler) GetAllFilmGenres(c *fiber.Ctx) error {
	links, err := h.service.GetAllFilmGenres(c.UserContext())
	if err != nil {
		return utils.HandleError(c, h.logger, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, links)
}

// CreateFilmGenre godoc
// @Summary Link a film to a genre
// @Tags film-genres
// @Accept json
// @Produce json
// @Param link body FilmGenreRequest true "Link"
// @Success 201 {object} models.FilmGenre "Link created"
// @Failure 400 {object} utils.MessageResponse "Invalid request or database error"
// @Router /films/genres [post]
func (h *FilmGenreHandler) CreateFilmGenre(c *fiber.Ctx) error {
	var req FilmGenreRequest
	if err := request.Bind(c, &req); err != nil {
		return utils.HandleError(c, h.logger, err)
	}

	link, err := h.service.CreateFilmGenre(c.UserContext(), models.FilmGenre{FilmID: req.FilmID, GenreID: req.GenreID})
	if err != nil {
		return utils.HandleError(c, h.logger, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, link)
}

// GetGenresByFilm godoc
// @Summary Get the genres of a film
// @Tags film-genres
// @Produce json
// @Param id path int true "Film ID"
// @Success 200 {array} models.Genre "Genres of the film"
// @Failure 404 {object} utils.MessageResponse "Genres not found"
// @Router /films/{id}/genres [get]
func (h *FilmGenreHandler) GetGenresByFilm(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	genres, err := h.service.GetGenresByFilm(c.UserContext(), id)
	if err != nil {
		return utils.HandleError(c, h.logger, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, genres)
}

// GetFilmsByGenre godoc
// @Summary Get the films of a genre
// @Tags film-genres
// @Produce json
// @Param id path int true "Genre ID"
// @Success 200 {array} models.Film "Films of the genre"
// @Failure 404 {object} utils.MessageResponse "Films not found"
// @Router /genres/{id}/films [get]
func (h *FilmGenreHandler) GetFilmsByGenre(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	films, err := h.service.GetFilmsByGenre(c.UserContext(), id)
	if err != nil {
		return utils.HandleError(c, h.logger, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, films)
}

// UpdateFilmGenre godoc
// @Summary Replace a film-genre link
// @Description Replace the link identified by the path with the pair in the body
// @Tags film-genres
// @Accept json
// @Produce json
// @Param id path int true "Current film ID"
// @Param genreId path int true "Current genre ID"
// @Param link body FilmGenreRequest true "New link"
// @Success 200 {object} models.FilmGenre "Link updated"
// @Failure 400 {object} utils.MessageResponse "Invalid request or database error"
// @Failure 404 {object} utils.MessageResponse "Record not found"
// @Router /films/{id}/genres/{genreId} [put]
func (h *FilmGenreHandler) UpdateFilmGenre(c *fiber.Ctx) error {
	current, err := linkFromPath(c)
	if err != nil {
		return err
	}

	var req FilmGenreRequest
	if err := request.Bind(c, &req); err != nil {
		return utils.HandleError(c, h.logger, err)
	}

	link, err := h.service.UpdateFilmGenre(c.UserContext(), current, models.FilmGenre{FilmID: req.FilmID, GenreID: req.GenreID})
	if err != nil {
		return utils.HandleError(c, h.logger, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, link)
}

// DeleteFilmGenre godoc
// @Summary Remove a film-genre link
// @Tags film-genres
// @Produce json
// @Param id path int true "Film ID"
// @Param genreId path int true "Genre ID"
// @Success 200 {object} models.FilmGenre "Deleted link"
// @Failure 404 {object} utils.MessageResponse "Record not found"
// @Router /films/{id}/genres/{genreId} [delete]
func (h *FilmGenreHandler) DeleteFilmGenre(c *fiber.Ctx) error {
	link, err := linkFromPath(c)
	if err != nil {
		return err
	}

	deleted, err := h.service.DeleteFilmGenre(c.UserContext(), link)
	if err != nil {
		return utils.HandleError(c, h.logger, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, deleted)
}

func linkFromPath(c *fiber.Ctx) (models.FilmGenre, error) {
	filmID, err := paramID(c, "id")
	if err != nil {
		return models.FilmGenre{}, err
	}
	genreID, err := paramID(c, "genreId")
	if err != nil {
		return models.FilmGenre{}, err
	}
	return models.FilmGenre{FilmID: filmID, GenreID: genreID}, nil
}
