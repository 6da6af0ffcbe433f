package repository

import (
	"context"
	"time"

	"film-catalog/internal/apperrors"
	"film-catalog/internal/database"
	"film-catalog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FilmGenreRepository interface {
	Create(ctx context.Context, link *models.FilmGenre) error
	// CreateForFilm inserts one link per genre id in a single statement.
	CreateForFilm(ctx context.Context, filmID int64, genreIDs []int64) error
	FindAll(ctx context.Context) ([]models.FilmGenre, error)
	FindGenresByFilm(ctx context.Context, filmID int64) ([]models.Genre, error)
	FindFilmsByGenre(ctx context.Context, genreID int64) ([]models.Film, error)
	CountByGenre(ctx context.Context, genreID int64) (int64, error)
	Update(ctx context.Context, current, updated models.FilmGenre) (*models.FilmGenre, error)
	Delete(ctx context.Context, link models.FilmGenre) (*models.FilmGenre, error)
	DeleteByFilm(ctx context.Context, filmID int64) (int64, error)
}

type filmGenreRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewFilmGenreRepository(db *database.Database) FilmGenreRepository {
	return &filmGenreRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *filmGenreRepository) Create(ctx context.Context, link *models.FilmGenre) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return apperrors.Database(err)
	}
	return nil
}

func (r *filmGenreRepository) CreateForFilm(ctx context.Context, filmID int64, genreIDs []int64) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return insertLinks(r.db.WithContext(ctx), filmID, genreIDs)
}

func (r *filmGenreRepository) FindAll(ctx context.Context) ([]models.FilmGenre, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	links := make([]models.FilmGenre, 0)
	if err := r.db.WithContext(ctx).Order("film_id, genre_id").Find(&links).Error; err != nil {
		return nil, apperrors.Database(err)
	}
	return links, nil
}

func (r *filmGenreRepository) FindGenresByFilm(ctx context.Context, filmID int64) ([]models.Genre, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	genres := make([]models.Genre, 0)
	err := r.db.WithContext(ctx).Model(&models.Genre{}).
		Select("genres.id, genres.name").
		Joins("JOIN films_genres ON genres.id = films_genres.genre_id").
		Where("films_genres.film_id = ?", filmID).
		Order("genres.id").
		Find(&genres).Error
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return genres, nil
}

func (r *filmGenreRepository) FindFilmsByGenre(ctx context.Context, genreID int64) ([]models.Film, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	films := make([]models.Film, 0)
	err := r.db.WithContext(ctx).Model(&models.Film{}).
		Select("films.*").
		Joins("JOIN films_genres ON films.id = films_genres.film_id").
		Where("films_genres.genre_id = ?", genreID).
		Order("films.id").
		Find(&films).Error
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return films, nil
}

func (r *filmGenreRepository) CountByGenre(ctx context.Context, genreID int64) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.FilmGenre{}).Where("genre_id = ?", genreID).Count(&count).Error
	if err != nil {
		return 0, apperrors.Database(err)
	}
	return count, nil
}

func (r *filmGenreRepository) Update(ctx context.Context, current, updated models.FilmGenre) (*models.FilmGenre, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var link models.FilmGenre
	result := r.db.WithContext(ctx).Model(&link).Clauses(clause.Returning{}).
		Where("film_id = ? AND genre_id = ?", current.FilmID, current.GenreID).
		Updates(map[string]interface{}{"film_id": updated.FilmID, "genre_id": updated.GenreID})
	if result.Error != nil {
		return nil, apperrors.Database(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &link, nil
}

func (r *filmGenreRepository) Delete(ctx context.Context, link models.FilmGenre) (*models.FilmGenre, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var deleted models.FilmGenre
	result := r.db.WithContext(ctx).Clauses(clause.Returning{}).
		Where("film_id = ? AND genre_id = ?", link.FilmID, link.GenreID).
		Delete(&deleted)
	if result.Error != nil {
		return nil, apperrors.Database(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &deleted, nil
}

func (r *filmGenreRepository) DeleteByFilm(ctx context.Context, filmID int64) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return deleteLinksByFilm(r.db.WithContext(ctx), filmID)
}

// insertLinks and deleteLinksByFilm run on either the pool or a transaction.

func insertLinks(db *gorm.DB, filmID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}

	links := make([]models.FilmGenre, 0, len(genreIDs))
	for _, genreID := range genreIDs {
		links = append(links, models.FilmGenre{FilmID: filmID, GenreID: genreID})
	}

	if err := db.Omit(clause.Associations).Create(&links).Error; err != nil {
		return apperrors.Database(err)
	}
	return nil
}

func deleteLinksByFilm(db *gorm.DB, filmID int64) (int64, error) {
	result := db.Where("film_id = ?", filmID).Delete(&models.FilmGenre{})
	if result.Error != nil {
		return 0, apperrors.Database(result.Error)
	}
	return result.RowsAffected, nil
}
