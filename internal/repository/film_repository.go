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

type FilmRepository interface {
	Create(ctx context.Context, film *models.Film) error
	FindAll(ctx context.Context) ([]models.Film, error)
	FindByID(ctx context.Context, id int64) (*models.Film, error)
	// Delete removes the film row and returns it, or nil if no row matched.
	Delete(ctx context.Context, id int64) (*models.Film, error)

	// Begin checks out a dedicated connection and opens a transaction on it.
	Begin(ctx context.Context) (FilmTx, error)
}

// FilmTx runs the film update statements on one transaction. Commit and
// Rollback release the connection; whichever comes first wins and later
// calls are no-ops, so callers can always defer Rollback.
type FilmTx interface {
	Update(ctx context.Context, id int64, title string, year int) (*models.Film, error)
	DeleteGenreLinks(ctx context.Context, filmID int64) error
	InsertGenreLinks(ctx context.Context, filmID int64, genreIDs []int64) error
	Commit() error
	Rollback() error
}

type filmRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewFilmRepository(db *database.Database) FilmRepository {
	return &filmRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *filmRepository) Create(ctx context.Context, film *models.Film) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(film).Error; err != nil {
		return apperrors.Database(err)
	}
	return nil
}

func (r *filmRepository) FindAll(ctx context.Context) ([]models.Film, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	films := make([]models.Film, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&films).Error; err != nil {
		return nil, apperrors.Database(err)
	}
	return films, nil
}

func (r *filmRepository) FindByID(ctx context.Context, id int64) (*models.Film, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var film models.Film
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&film).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Database(err)
	}
	return &film, nil
}

func (r *filmRepository) Delete(ctx context.Context, id int64) (*models.Film, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var film models.Film
	result := r.db.WithContext(ctx).Clauses(clause.Returning{}).Where("id = ?", id).Delete(&film)
	if result.Error != nil {
		return nil, apperrors.Database(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &film, nil
}

func (r *filmRepository) Begin(ctx context.Context) (FilmTx, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)

	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		cancel()
		return nil, apperrors.Database(tx.Error)
	}
	return &filmTx{tx: tx, ctx: ctx, cancel: cancel}, nil
}

// filmTx statements run under the context Begin bounded with the query
// timeout, not the per-call context.
type filmTx struct {
	tx     *gorm.DB
	ctx    context.Context
	cancel context.CancelFunc
	done   bool
}

func (t *filmTx) Update(_ context.Context, id int64, title string, year int) (*models.Film, error) {
	var film models.Film
	result := t.tx.WithContext(t.ctx).Model(&film).Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"title": title, "year": year})
	if result.Error != nil {
		return nil, apperrors.Database(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &film, nil
}

func (t *filmTx) DeleteGenreLinks(_ context.Context, filmID int64) error {
	_, err := deleteLinksByFilm(t.tx.WithContext(t.ctx), filmID)
	return err
}

func (t *filmTx) InsertGenreLinks(_ context.Context, filmID int64, genreIDs []int64) error {
	return insertLinks(t.tx.WithContext(t.ctx), filmID, genreIDs)
}

func (t *filmTx) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	defer t.cancel()

	if err := t.tx.Commit().Error; err != nil {
		return apperrors.Database(err)
	}
	return nil
}

func (t *filmTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	defer t.cancel()

	if err := t.tx.Rollback().Error; err != nil {
		return apperrors.Database(err)
	}
	return nil
}
