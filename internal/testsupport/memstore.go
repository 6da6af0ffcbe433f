// Package testsupport provides in-memory implementations of the repository
// interfaces. They enforce the same primary and foreign keys as the
// PostgreSQL schema so service and handler tests see realistic failures.
package testsupport

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"film-catalog/internal/apperrors"
	"film-catalog/internal/models"
	"film-catalog/internal/repository"
)

type linkKey struct {
	filmID  int64
	genreID int64
}

type state struct {
	films  map[int64]models.Film
	genres map[int64]models.Genre
	links  map[linkKey]struct{}
}

func (s *state) clone() *state {
	c := &state{
		films:  make(map[int64]models.Film, len(s.films)),
		genres: make(map[int64]models.Genre, len(s.genres)),
		links:  make(map[linkKey]struct{}, len(s.links)),
	}
	for k, v := range s.films {
		c.films[k] = v
	}
	for k, v := range s.genres {
		c.genres[k] = v
	}
	for k := range s.links {
		c.links[k] = struct{}{}
	}
	return c
}

// Store is an in-memory stand-in for the films/genres/films_genres tables.
type Store struct {
	mu          sync.Mutex
	data        *state
	nextFilmID  int64
	nextGenreID int64
	failures    map[string]error

	// Calls counts statements by operation name, e.g. "genres.delete".
	Calls     map[string]int
	Commits   int
	Rollbacks int
	OpenTx    int
}

func NewStore() *Store {
	return &Store{
		data: &state{
			films:  map[int64]models.Film{},
			genres: map[int64]models.Genre{},
			links:  map[linkKey]struct{}{},
		},
		failures: map[string]error{},
		Calls:    map[string]int{},
	}
}

// FailOn makes the named operation return a database error until cleared
// with FailOn(op, nil).
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *Store) Films() repository.FilmRepository {
	return &filmRepo{store: s}
}

func (s *Store) Genres() repository.GenreRepository {
	return &genreRepo{store: s}
}

func (s *Store) FilmGenres() repository.FilmGenreRepository {
	return &filmGenreRepo{store: s}
}

// SeedGenre inserts a genre directly and returns it.
func (s *Store) SeedGenre(name string) models.Genre {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextGenreID++
	genre := models.Genre{ID: s.nextGenreID, Name: name}
	s.data.genres[genre.ID] = genre
	return genre
}

// SeedFilm inserts a film and its links directly, bypassing key checks.
func (s *Store) SeedFilm(title string, year int, genreIDs ...int64) models.Film {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextFilmID++
	film := models.Film{ID: s.nextFilmID, Title: title, Year: year}
	s.data.films[film.ID] = film
	for _, genreID := range genreIDs {
		s.data.links[linkKey{film.ID, genreID}] = struct{}{}
	}
	return film
}

func (s *Store) HasFilm(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data.films[id]
	return ok
}

func (s *Store) HasGenre(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data.genres[id]
	return ok
}

// GenreIDsForFilm returns the linked genre ids in ascending order.
func (s *Store) GenreIDsForFilm(filmID int64) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0)
	for k := range s.data.links {
		if k.filmID == filmID {
			ids = append(ids, k.genreID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *Store) LinkCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.links)
}

// call records op and returns the injected failure, if any. Callers hold mu.
func (s *Store) call(op string) error {
	s.Calls[op]++
	if err, ok := s.failures[op]; ok {
		return apperrors.Database(err)
	}
	return nil
}

var errForeignKey = errors.New("violates foreign key constraint")

func insertLinks(data *state, filmID int64, genreIDs []int64) error {
	staged := make([]linkKey, 0, len(genreIDs))
	seen := map[linkKey]bool{}
	for _, genreID := range genreIDs {
		key := linkKey{filmID, genreID}
		if _, ok := data.films[filmID]; !ok {
			return apperrors.Database(fmt.Errorf("film %d: %w", filmID, errForeignKey))
		}
		if _, ok := data.genres[genreID]; !ok {
			return apperrors.Database(fmt.Errorf("genre %d: %w", genreID, errForeignKey))
		}
		if _, ok := data.links[key]; ok || seen[key] {
			return apperrors.Database(fmt.Errorf("duplicate key (%d, %d)", filmID, genreID))
		}
		seen[key] = true
		staged = append(staged, key)
	}
	for _, key := range staged {
		data.links[key] = struct{}{}
	}
	return nil
}

func deleteLinksByFilm(data *state, filmID int64) int64 {
	var n int64
	for k := range data.links {
		if k.filmID == filmID {
			delete(data.links, k)
			n++
		}
	}
	return n
}

type filmRepo struct {
	store *Store
}

func (r *filmRepo) Create(_ context.Context, film *models.Film) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("films.create"); err != nil {
		return err
	}
	s.nextFilmID++
	film.ID = s.nextFilmID
	s.data.films[film.ID] = *film
	return nil
}

func (r *filmRepo) FindAll(_ context.Context) ([]models.Film, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("films.find_all"); err != nil {
		return nil, err
	}
	films := make([]models.Film, 0, len(s.data.films))
	for _, f := range s.data.films {
		films = append(films, f)
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })
	return films, nil
}

func (r *filmRepo) FindByID(_ context.Context, id int64) (*models.Film, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("films.find_by_id"); err != nil {
		return nil, err
	}
	film, ok := s.data.films[id]
	if !ok {
		return nil, nil
	}
	return &film, nil
}

func (r *filmRepo) Delete(_ context.Context, id int64) (*models.Film, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("films.delete"); err != nil {
		return nil, err
	}
	film, ok := s.data.films[id]
	if !ok {
		return nil, nil
	}
	for k := range s.data.links {
		if k.filmID == id {
			return nil, apperrors.Database(fmt.Errorf("film %d still linked: %w", id, errForeignKey))
		}
	}
	delete(s.data.films, id)
	return &film, nil
}

func (r *filmRepo) Begin(_ context.Context) (repository.FilmTx, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("films.begin"); err != nil {
		return nil, err
	}
	s.OpenTx++
	return &filmTx{store: s, staged: s.data.clone()}, nil
}

// filmTx works on a copy of the tables that replaces the store's on commit.
type filmTx struct {
	store  *Store
	staged *state
	done   bool
}

func (t *filmTx) Update(_ context.Context, id int64, title string, year int) (*models.Film, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.call("tx.update_film"); err != nil {
		return nil, err
	}
	film, ok := t.staged.films[id]
	if !ok {
		return nil, nil
	}
	film.Title = title
	film.Year = year
	t.staged.films[id] = film
	return &film, nil
}

func (t *filmTx) DeleteGenreLinks(_ context.Context, filmID int64) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.call("tx.delete_links"); err != nil {
		return err
	}
	deleteLinksByFilm(t.staged, filmID)
	return nil
}

func (t *filmTx) InsertGenreLinks(_ context.Context, filmID int64, genreIDs []int64) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if err := t.store.call("tx.insert_links"); err != nil {
		return err
	}
	return insertLinks(t.staged, filmID, genreIDs)
}

func (t *filmTx) Commit() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.done {
		return nil
	}
	t.done = true
	t.store.OpenTx--
	if err := t.store.call("tx.commit"); err != nil {
		return err
	}
	t.store.Commits++
	t.store.data = t.staged
	return nil
}

func (t *filmTx) Rollback() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.done {
		return nil
	}
	t.done = true
	t.store.OpenTx--
	t.store.Rollbacks++
	return nil
}

type genreRepo struct {
	store *Store
}

func (r *genreRepo) Create(_ context.Context, genre *models.Genre) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("genres.create"); err != nil {
		return err
	}
	s.nextGenreID++
	genre.ID = s.nextGenreID
	s.data.genres[genre.ID] = *genre
	return nil
}

func (r *genreRepo) FindAll(_ context.Context) ([]models.Genre, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("genres.find_all"); err != nil {
		return nil, err
	}
	genres := make([]models.Genre, 0, len(s.data.genres))
	for _, g := range s.data.genres {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	return genres, nil
}

func (r *genreRepo) FindByID(_ context.Context, id int64) (*models.Genre, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("genres.find_by_id"); err != nil {
		return nil, err
	}
	genre, ok := s.data.genres[id]
	if !ok {
		return nil, nil
	}
	return &genre, nil
}

func (r *genreRepo) Update(_ context.Context, id int64, name string) (*models.Genre, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("genres.update"); err != nil {
		return nil, err
	}
	genre, ok := s.data.genres[id]
	if !ok {
		return nil, nil
	}
	genre.Name = name
	s.data.genres[id] = genre
	return &genre, nil
}

func (r *genreRepo) Delete(_ context.Context, id int64) (*models.Genre, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("genres.delete"); err != nil {
		return nil, err
	}
	genre, ok := s.data.genres[id]
	if !ok {
		return nil, nil
	}
	for k := range s.data.links {
		if k.genreID == id {
			return nil, apperrors.Database(fmt.Errorf("genre %d still linked: %w", id, errForeignKey))
		}
	}
	delete(s.data.genres, id)
	return &genre, nil
}

type filmGenreRepo struct {
	store *Store
}

func (r *filmGenreRepo) Create(_ context.Context, link *models.FilmGenre) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("film_genres.create"); err != nil {
		return err
	}
	return insertLinks(s.data, link.FilmID, []int64{link.GenreID})
}

func (r *filmGenreRepo) CreateForFilm(_ context.Context, filmID int64, genreIDs []int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("film_genres.create_for_film"); err != nil {
		return err
	}
	return insertLinks(s.data, filmID, genreIDs)
}

func (r *filmGenreRepo) FindAll(_ context.Context) ([]models.FilmGenre, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("film_genres.find_all"); err != nil {
		return nil, err
	}
	links := make([]models.FilmGenre, 0, len(s.data.links))
	for k := range s.data.links {
		links = append(links, models.FilmGenre{FilmID: k.filmID, GenreID: k.genreID})
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].FilmID != links[j].FilmID {
			return links[i].FilmID < links[j].FilmID
		}
		return links[i].GenreID < links[j].GenreID
	})
	return links, nil
}

func (r *filmGenreRepo) FindGenresByFilm(_ context.Context, filmID int64) ([]models.Genre, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("film_genres.find_genres_by_film"); err != nil {
		return nil, err
	}
	genres := make([]models.Genre, 0)
	for k := range s.data.links {
		if k.filmID != filmID {
			continue
		}
		if g, ok := s.data.genres[k.genreID]; ok {
			genres = append(genres, g)
		}
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	return genres, nil
}

func (r *filmGenreRepo) FindFilmsByGenre(_ context.Context, genreID int64) ([]models.Film, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("film_genres.find_films_by_genre"); err != nil {
		return nil, err
	}
	films := make([]models.Film, 0)
	for k := range s.data.links {
		if k.genreID != genreID {
			continue
		}
		if f, ok := s.data.films[k.filmID]; ok {
			films = append(films, f)
		}
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })
	return films, nil
}

func (r *filmGenreRepo) CountByGenre(_ context.Context, genreID int64) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("film_genres.count_by_genre"); err != nil {
		return 0, err
	}
	var n int64
	for k := range s.data.links {
		if k.genreID == genreID {
			n++
		}
	}
	return n, nil
}

func (r *filmGenreRepo) Update(_ context.Context, current, updated models.FilmGenre) (*models.FilmGenre, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("film_genres.update"); err != nil {
		return nil, err
	}
	old := linkKey{current.FilmID, current.GenreID}
	if _, ok := s.data.links[old]; !ok {
		return nil, nil
	}
	delete(s.data.links, old)
	if err := insertLinks(s.data, updated.FilmID, []int64{updated.GenreID}); err != nil {
		s.data.links[old] = struct{}{}
		return nil, err
	}
	return &models.FilmGenre{FilmID: updated.FilmID, GenreID: updated.GenreID}, nil
}

func (r *filmGenreRepo) Delete(_ context.Context, link models.FilmGenre) (*models.FilmGenre, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("film_genres.delete"); err != nil {
		return nil, err
	}
	key := linkKey{link.FilmID, link.GenreID}
	if _, ok := s.data.links[key]; !ok {
		return nil, nil
	}
	delete(s.data.links, key)
	return &models.FilmGenre{FilmID: link.FilmID, GenreID: link.GenreID}, nil
}

func (r *filmGenreRepo) DeleteByFilm(_ context.Context, filmID int64) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("film_genres.delete_by_film"); err != nil {
		return 0, err
	}
	return deleteLinksByFilm(s.data, filmID), nil
}
