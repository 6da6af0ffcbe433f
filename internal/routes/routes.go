package routes

import (
	"errors"

	"film-catalog/internal/apperrors"
	"film-catalog/internal/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Handlers groups the resource handlers mounted by Setup. Posters is only
// routed when WithPosters is set.
type Handlers struct {
	Films      *handlers.FilmHandler
	Genres     *handlers.GenreHandler
	FilmGenres *handlers.FilmGenreHandler

	WithPosters bool
}

// Setup registers GET routes through Add so that fiber does not add a HEAD
// twin; HEAD on these paths answers 405.
func Setup(app *fiber.App, h Handlers) {
	// Film-genre links. /films/genres is registered ahead of /films/:id.
	links := app.Group("/films/genres")
	{
		links.Add(fiber.MethodGet, "/", h.FilmGenres.GetAllFilmGenres)
		links.Post("/", h.FilmGenres.CreateFilmGenre)
	}

	films := app.Group("/films")
	{
		films.Add(fiber.MethodGet, "/", h.Films.GetAllFilms)
		films.Post("/", h.Films.CreateFilm)
		films.Add(fiber.MethodGet, "/:id<int>", h.Films.GetFilmByID)
		films.Put("/:id<int>", h.Films.UpdateFilm)
		films.Delete("/:id<int>", h.Films.DeleteFilm)

		films.Add(fiber.MethodGet, "/:id<int>/genres", h.FilmGenres.GetGenresByFilm)
		films.Put("/:id<int>/genres/:genreId<int>", h.FilmGenres.UpdateFilmGenre)
		films.Delete("/:id<int>/genres/:genreId<int>", h.FilmGenres.DeleteFilmGenre)

		if h.WithPosters {
			films.Add(fiber.MethodGet, "/:id<int>/poster", h.Films.GetPosterUploadURL)
		}
	}

	genres := app.Group("/genres")
	{
		genres.Add(fiber.MethodGet, "/", h.Genres.GetAllGenres)
		genres.Post("/", h.Genres.CreateGenre)
		genres.Add(fiber.MethodGet, "/:id<int>", h.Genres.GetGenreByID)
		genres.Put("/:id<int>", h.Genres.UpdateGenre)
		genres.Delete("/:id<int>", h.Genres.DeleteGenre)

		genres.Add(fiber.MethodGet, "/:id<int>/films", h.FilmGenres.GetFilmsByGenre)
	}
}

// ErrorHandler answers unmatched paths and unsupported methods with an empty
// body. Every other error is written as {"message": ...}.
func ErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			switch fe.Code {
			case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
				c.Status(fe.Code)
				return c.Send(nil)
			}

			log.WithError(err).WithFields(logrus.Fields{
				"method": c.Method(),
				"path":   c.Path(),
				"status": fe.Code,
			}).Debug("Request rejected")
			return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
		}

		code, message := apperrors.StatusCode(err)
		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"status": code,
		}).Error("Request error")

		return c.Status(code).JSON(fiber.Map{"message": message})
	}
}
