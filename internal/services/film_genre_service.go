package services

import (
	"context"

	"film-catalog/internal/apperrors"
	"film-catalog/internal/models"
	"film-catalog/internal/repository"

	"github.com/sirupsen/logrus"
)

const (
	msgGenresNotFound = "Genres not found"
	msgFilmsNotFound  = "Films not found"
	msgLinkNotFound   = "Record not found"
)

type FilmGenreService interface {
	CreateFilmGenre(ctx context.Context, link models.FilmGenre) (*models.FilmGenre, error)
	GetAllFilmGenres(ctx context.Context) ([]models.FilmGenre, error)
	GetGenresByFilm(ctx context.Context, filmID int64) ([]models.Genre, error)
	GetFilmsByGenre(ctx context.Context, genreID int64) ([]models.Film, error)
	UpdateFilmGenre(ctx context.Context, current, updated models.FilmGenre) (*models.FilmGenre, error)
	DeleteFilmGenre(ctx context.Context, link models.FilmGenre) (*models.FilmGenre, error)
}

type filmGenreService struct {
	links  repository.FilmGenreRepository
	logger *logrus.Logger
}

func NewFilmGenreService(links repository.FilmGenreRepository, logger *logrus.Logger) FilmGenreService {
	return &filmGenreService{
		links:  links,
		logger: logger,
	}
}

func (s *filmGenreService) CreateFilmGenre(ctx context.Context, link models.FilmGenre) (*models.FilmGenre, error) {
	if err := s.links.Create(ctx, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *filmGenreService) GetAllFilmGenres(ctx context.Context) ([]models.FilmGenre, error) {
	return s.links.FindAll(ctx)
}

// GetGenresByFilm treats a film without genres the same as a missing film.
func (s *filmGenreService) GetGenresByFilm(ctx context.Context, filmID int64) ([]models.Genre, error) {
	genres, err := s.links.FindGenresByFilm(ctx, filmID)
	if err != nil {
		return nil, err
	}
	if len(genres) == 0 {
		return nil, apperrors.NotFound(msgGenresNotFound)
	}
	return genres, nil
}

func (s *filmGenreService) GetFilmsByGenre(ctx context.Context, genreID int64) ([]models.Film, error) {
	films, err := s.links.FindFilmsByGenre(ctx, genreID)
	if err != nil {
		return nil, err
	}
	if len(films) == 0 {
		return nil, apperrors.NotFound(msgFilmsNotFound)
	}
	return films, nil
}

func (s *filmGenreService) UpdateFilmGenre(ctx context.Context, current, updated models.FilmGenre) (*models.FilmGenre, error) {
	link, err := s.links.Update(ctx, current, updated)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, apperrors.NotFound(msgLinkNotFound)
	}
	return link, nil
}

func (s *filmGenreService) DeleteFilmGenre(ctx context.Context, link models.FilmGenre) (*models.FilmGenre, error) {
	deleted, err := s.links.Delete(ctx, link)
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, apperrors.NotFound(msgLinkNotFound)
	}
	return deleted, nil
}
