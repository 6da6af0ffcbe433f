package repository

import (
	"context"
	"errors"
	"time"

	"film-catalog/internal/apperrors"
	"film-catalog/internal/database"
	"film-catalog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GenreRepository interface {
	Create(ctx context.Context, genre *models.Genre) error
	FindAll(ctx context.Context) ([]models.Genre, error)
	FindByID(ctx context.Context, id int64) (*models.Genre, error)
	Update(ctx context.Context, id int64, name string) (*models.Genre, error)
	Delete(ctx context.Context, id int64) (*models.Genre, error)
}

type genreRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewGenreRepository(db *database.Database) GenreRepository {
	return &genreRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *genreRepository) Create(ctx context.Context, genre *models.Genre) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(genre).Error; err != nil {
		return apperrors.Database(err)
	}
	return nil
}

func (r *genreRepository) FindAll(ctx context.Context) ([]models.Genre, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	genres := make([]models.Genre, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&genres).Error; err != nil {
		return nil, apperrors.Database(err)
	}
	return genres, nil
}

func (r *genreRepository) FindByID(ctx context.Context, id int64) (*models.Genre, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var genre models.Genre
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&genre).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Database(err)
	}
	return &genre, nil
}

func (r *genreRepository) Update(ctx context.Context, id int64, name string) (*models.Genre, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var genre models.Genre
	result := r.db.WithContext(ctx).Model(&genre).Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("name", name)
	if result.Error != nil {
		return nil, apperrors.Database(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &genre, nil
}

func (r *genreRepository) Delete(ctx context.Context, id int64) (*models.Genre, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var genre models.Genre
	result := r.db.WithContext(ctx).Clauses(clause.Returning{}).Where("id = ?", id).Delete(&genre)
	if result.Error != nil {
		return nil, apperrors.Database(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &genre, nil
}
