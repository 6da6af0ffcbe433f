package services

import (
	"context"

	"film-catalog/internal/apperrors"
	"film-catalog/internal/models"
	"film-catalog/internal/repository"

	"github.com/sirupsen/logrus"
)

const msgGenreInUse = "Cannot delete genre while it is referenced by at least one film"

type GenreService interface {
	CreateGenre(ctx context.Context, name string) (*models.Genre, error)
	GetAllGenres(ctx context.Context) ([]models.Genre, error)
	GetGenreByID(ctx context.Context, id int64) (*models.Genre, error)
	UpdateGenre(ctx context.Context, id int64, name string) (*models.Genre, error)
	DeleteGenre(ctx context.Context, id int64) (*models.Genre, error)
}

type genreService struct {
	genres repository.GenreRepository
	links  repository.FilmGenreRepository
	logger *logrus.Logger
}

func NewGenreService(genres repository.GenreRepository, links repository.FilmGenreRepository, logger *logrus.Logger) GenreService {
	return &genreService{
		genres: genres,
		links:  links,
		logger: logger,
	}
}

func (s *genreService) CreateGenre(ctx context.Context, name string) (*models.Genre, error) {
	genre := &models.Genre{Name: name}
	if err := s.genres.Create(ctx, genre); err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *genreService) GetAllGenres(ctx context.Context) ([]models.Genre, error) {
	return s.genres.FindAll(ctx)
}

func (s *genreService) GetGenreByID(ctx context.Context, id int64) (*models.Genre, error) {
	genre, err := s.genres.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return nil, apperrors.NotFound(msgGenreNotFound)
	}
	return genre, nil
}

func (s *genreService) UpdateGenre(ctx context.Context, id int64, name string) (*models.Genre, error) {
	genre, err := s.genres.Update(ctx, id, name)
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return nil, apperrors.NotFound(msgGenreNotFound)
	}
	return genre, nil
}

// DeleteGenre refuses to delete a genre that any film still references.
func (s *genreService) DeleteGenre(ctx context.Context, id int64) (*models.Genre, error) {
	refs, err := s.links.CountByGenre(ctx, id)
	if err != nil {
		return nil, err
	}
	if refs > 0 {
		s.logger.WithFields(logrus.Fields{"genre_id": id, "films": refs}).Debug("Genre delete blocked by film references")
		return nil, apperrors.Conflict(msgGenreInUse)
	}

	genre, err := s.genres.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return nil, apperrors.NotFound(msgGenreNotFound)
	}
	return genre, nil
}
