package services

import (
	"context"

	"film-catalog/internal/apperrors"
	"film-catalog/internal/models"
	"film-catalog/internal/repository"

	"github.com/sirupsen/logrus"
)

const (
	msgFilmNotFound  = "Film not found"
	msgGenreNotFound = "Genre not found"
)

type FilmInput struct {
	Title    string
	Year     int
	GenreIDs []int64
}

type FilmService interface {
	CreateFilm(ctx context.Context, input FilmInput) (*models.Film, error)
	GetAllFilms(ctx context.Context) ([]models.Film, error)
	GetFilmByID(ctx context.Context, id int64) (*models.Film, error)
	UpdateFilm(ctx context.Context, id int64, input FilmInput) (*models.Film, error)
	DeleteFilm(ctx context.Context, id int64) (*models.Film, error)

	PresignPosterUpload(ctx context.Context, id int64, filename, contentType string) (*PosterUpload, error)
}

type filmService struct {
	films   repository.FilmRepository
	links   repository.FilmGenreRepository
	posters PosterStorage
	logger  *logrus.Logger
}

func NewFilmService(films repository.FilmRepository, links repository.FilmGenreRepository, logger *logrus.Logger) FilmService {
	return &filmService{
		films:  films,
		links:  links,
		logger: logger,
	}
}

func (s *filmService) SetPosterStorage(posters PosterStorage) {
	s.posters = posters
}

// CreateFilm inserts the film and then its genre links. When the links
// cannot be inserted the film row is deleted again before returning.
func (s *filmService) CreateFilm(ctx context.Context, input FilmInput) (*models.Film, error) {
	film := &models.Film{Title: input.Title, Year: input.Year}
	if err := s.films.Create(ctx, film); err != nil {
		return nil, err
	}

	if err := s.links.CreateForFilm(ctx, film.ID, input.GenreIDs); err != nil {
		entry := s.logger.WithError(err).WithField("film_id", film.ID)
		if _, delErr := s.films.Delete(ctx, film.ID); delErr != nil {
			entry.WithField("compensation_error", delErr.Error()).Warn("Failed to remove film after genre link failure")
		} else {
			entry.Debug("Removed film after genre link failure")
		}
		return nil, err
	}

	return film, nil
}

func (s *filmService) GetAllFilms(ctx context.Context) ([]models.Film, error) {
	return s.films.FindAll(ctx)
}

func (s *filmService) GetFilmByID(ctx context.Context, id int64) (*models.Film, error) {
	film, err := s.films.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if film == nil {
		return nil, apperrors.NotFound(msgFilmNotFound)
	}
	return film, nil
}

// UpdateFilm replaces the film row and its whole genre set in one
// transaction. Every return path releases the transaction exactly once.
func (s *filmService) UpdateFilm(ctx context.Context, id int64, input FilmInput) (*models.Film, error) {
	tx, err := s.films.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.WithError(rbErr).WithField("film_id", id).Warn("Failed to roll back film update")
		}
	}()

	film, err := tx.Update(ctx, id, input.Title, input.Year)
	if err != nil {
		return nil, err
	}
	if film == nil {
		return nil, apperrors.NotFound(msgFilmNotFound)
	}

	if err := tx.DeleteGenreLinks(ctx, id); err != nil {
		return nil, err
	}

	if len(input.GenreIDs) > 0 {
		if err := tx.InsertGenreLinks(ctx, id, input.GenreIDs); err != nil {
			s.logger.WithError(err).WithField("film_id", id).Debug("Genre links rejected")
			return nil, apperrors.NotFound(msgGenreNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return film, nil
}

// DeleteFilm removes the film's genre links and then the film itself.
func (s *filmService) DeleteFilm(ctx context.Context, id int64) (*models.Film, error) {
	if _, err := s.links.DeleteByFilm(ctx, id); err != nil {
		return nil, err
	}

	film, err := s.films.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if film == nil {
		return nil, apperrors.NotFound(msgFilmNotFound)
	}

	if s.posters != nil {
		if err := s.posters.DeleteFilmPosters(ctx, id); err != nil {
			s.logger.WithError(err).WithField("film_id", id).Warn("Failed to delete film posters")
		}
	}

	return film, nil
}

func (s *filmService) PresignPosterUpload(ctx context.Context, id int64, filename, contentType string) (*PosterUpload, error) {
	if s.posters == nil {
		return nil, apperrors.New(apperrors.KindInternal, "poster storage is not configured")
	}
	if _, err := s.GetFilmByID(ctx, id); err != nil {
		return nil, err
	}
	return s.posters.PresignUpload(ctx, id, filename, contentType)
}
