package services

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"

	"film-catalog/internal/apperrors"
	"film-catalog/internal/testsupport"

	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakePosterStorage struct {
	deleted   []int64
	deleteErr error
}

func (f *fakePosterStorage) PresignUpload(_ context.Context, filmID int64, filename, contentType string) (*PosterUpload, error) {
	key := posterObjectKey(filmID, filename, "0123456789")
	return &PosterUpload{ObjectKey: key, PresignedURL: "http://minio/" + key, ContentType: contentType}, nil
}

func (f *fakePosterStorage) DeleteFilmPosters(_ context.Context, filmID int64) error {
	f.deleted = append(f.deleted, filmID)
	return f.deleteErr
}

func newFilmService(store *testsupport.Store) *filmService {
	return NewFilmService(store.Films(), store.FilmGenres(), newTestLogger()).(*filmService)
}

func TestCreateFilmLinksGenres(t *testing.T) {
	store := testsupport.NewStore()
	drama := store.SeedGenre("Drama")
	scifi := store.SeedGenre("Sci-Fi")
	svc := newFilmService(store)

	film, err := svc.CreateFilm(context.Background(), FilmInput{Title: "Solaris", Year: 1972, GenreIDs: []int64{drama.ID, scifi.ID}})
	if err != nil {
		t.Fatalf("CreateFilm: %v", err)
	}
	if film.ID == 0 || film.Title != "Solaris" || film.Year != 1972 {
		t.Fatalf("unexpected film %+v", film)
	}
	if got := store.GenreIDsForFilm(film.ID); !reflect.DeepEqual(got, []int64{drama.ID, scifi.ID}) {
		t.Fatalf("expected links to both genres, got %v", got)
	}
}

func TestCreateFilmRemovesFilmWhenLinksFail(t *testing.T) {
	store := testsupport.NewStore()
	drama := store.SeedGenre("Drama")
	svc := newFilmService(store)

	_, err := svc.CreateFilm(context.Background(), FilmInput{Title: "Stalker", Year: 1979, GenreIDs: []int64{drama.ID, 999}})
	if !apperrors.Is(err, apperrors.KindDatabase) {
		t.Fatalf("expected database error, got %v", err)
	}
	if store.HasFilm(1) {
		t.Fatal("film row should have been removed by the compensating delete")
	}
	if store.LinkCount() != 0 {
		t.Fatalf("expected no links, got %d", store.LinkCount())
	}
	if store.Calls["films.delete"] != 1 {
		t.Fatalf("expected one compensating delete, got %d", store.Calls["films.delete"])
	}
}

func TestCreateFilmInsertFailureSkipsCompensation(t *testing.T) {
	store := testsupport.NewStore()
	store.FailOn("films.create", errors.New("connection refused"))
	svc := newFilmService(store)

	_, err := svc.CreateFilm(context.Background(), FilmInput{Title: "Mirror", Year: 1975, GenreIDs: []int64{1}})
	if !apperrors.Is(err, apperrors.KindDatabase) {
		t.Fatalf("expected database error, got %v", err)
	}
	if store.Calls["films.delete"] != 0 {
		t.Fatal("no compensating delete expected before the film exists")
	}
}

func TestUpdateFilmReplacesGenres(t *testing.T) {
	store := testsupport.NewStore()
	drama := store.SeedGenre("Drama")
	scifi := store.SeedGenre("Sci-Fi")
	war := store.SeedGenre("War")
	film := store.SeedFilm("Ivan's Childhood", 1961, drama.ID, scifi.ID)
	svc := newFilmService(store)

	updated, err := svc.UpdateFilm(context.Background(), film.ID, FilmInput{Title: "Ivan's Childhood", Year: 1962, GenreIDs: []int64{war.ID}})
	if err != nil {
		t.Fatalf("UpdateFilm: %v", err)
	}
	if updated.Year != 1962 {
		t.Fatalf("expected year 1962, got %d", updated.Year)
	}
	if got := store.GenreIDsForFilm(film.ID); !reflect.DeepEqual(got, []int64{war.ID}) {
		t.Fatalf("expected genre set to be replaced, got %v", got)
	}
	if store.Commits != 1 || store.Rollbacks != 0 || store.OpenTx != 0 {
		t.Fatalf("expected one commit and no open tx, got commits=%d rollbacks=%d open=%d", store.Commits, store.Rollbacks, store.OpenTx)
	}
}

func TestUpdateFilmWithEmptyGenresClearsLinks(t *testing.T) {
	store := testsupport.NewStore()
	drama := store.SeedGenre("Drama")
	film := store.SeedFilm("Nostalghia", 1983, drama.ID)
	svc := newFilmService(store)

	if _, err := svc.UpdateFilm(context.Background(), film.ID, FilmInput{Title: "Nostalghia", Year: 1983, GenreIDs: []int64{}}); err != nil {
		t.Fatalf("UpdateFilm: %v", err)
	}
	if got := store.GenreIDsForFilm(film.ID); len(got) != 0 {
		t.Fatalf("expected no links, got %v", got)
	}
	if store.Calls["tx.insert_links"] != 0 {
		t.Fatal("no insert expected for an empty genre list")
	}
}

func TestUpdateFilmNotFoundRollsBack(t *testing.T) {
	store := testsupport.NewStore()
	svc := newFilmService(store)

	_, err := svc.UpdateFilm(context.Background(), 42, FilmInput{Title: "Missing", Year: 2000, GenreIDs: []int64{1}})
	if !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if store.Rollbacks != 1 || store.Commits != 0 || store.OpenTx != 0 {
		t.Fatalf("expected a single rollback, got commits=%d rollbacks=%d open=%d", store.Commits, store.Rollbacks, store.OpenTx)
	}
	if store.Calls["tx.delete_links"] != 0 {
		t.Fatal("links must not be touched once the film is missing")
	}
}

func TestUpdateFilmUnknownGenreRollsBack(t *testing.T) {
	store := testsupport.NewStore()
	drama := store.SeedGenre("Drama")
	film := store.SeedFilm("The Sacrifice", 1986, drama.ID)
	svc := newFilmService(store)

	_, err := svc.UpdateFilm(context.Background(), film.ID, FilmInput{Title: "Offret", Year: 1986, GenreIDs: []int64{77}})
	if !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, message := apperrors.StatusCode(err); message != msgGenreNotFound {
		t.Fatalf("unexpected message %q", message)
	}
	if store.Rollbacks != 1 || store.OpenTx != 0 {
		t.Fatalf("expected rollback, got rollbacks=%d open=%d", store.Rollbacks, store.OpenTx)
	}
	if got := store.GenreIDsForFilm(film.ID); !reflect.DeepEqual(got, []int64{drama.ID}) {
		t.Fatalf("original links should survive the rollback, got %v", got)
	}
	got, _ := svc.GetFilmByID(context.Background(), film.ID)
	if got.Title != "The Sacrifice" {
		t.Fatalf("title should be unchanged, got %q", got.Title)
	}
}

func TestUpdateFilmBeginFailure(t *testing.T) {
	store := testsupport.NewStore()
	store.FailOn("films.begin", errors.New("pool exhausted"))
	svc := newFilmService(store)

	_, err := svc.UpdateFilm(context.Background(), 1, FilmInput{Title: "x", Year: 1, GenreIDs: []int64{}})
	if !apperrors.Is(err, apperrors.KindDatabase) {
		t.Fatalf("expected database error, got %v", err)
	}
	if store.OpenTx != 0 {
		t.Fatalf("expected no open tx, got %d", store.OpenTx)
	}
}

func TestDeleteFilm(t *testing.T) {
	store := testsupport.NewStore()
	drama := store.SeedGenre("Drama")
	film := store.SeedFilm("Andrei Rublev", 1966, drama.ID)
	svc := newFilmService(store)
	posters := &fakePosterStorage{}
	svc.SetPosterStorage(posters)

	deleted, err := svc.DeleteFilm(context.Background(), film.ID)
	if err != nil {
		t.Fatalf("DeleteFilm: %v", err)
	}
	if deleted.ID != film.ID {
		t.Fatalf("expected deleted film %d, got %d", film.ID, deleted.ID)
	}
	if store.HasFilm(film.ID) || store.LinkCount() != 0 {
		t.Fatal("film and links should be gone")
	}
	if !reflect.DeepEqual(posters.deleted, []int64{film.ID}) {
		t.Fatalf("expected poster cleanup for film %d, got %v", film.ID, posters.deleted)
	}
}

func TestDeleteFilmStopsWhenLinkDeleteFails(t *testing.T) {
	store := testsupport.NewStore()
	film := store.SeedFilm("Solaris", 1972)
	store.FailOn("film_genres.delete_by_film", errors.New("timeout"))
	svc := newFilmService(store)

	_, err := svc.DeleteFilm(context.Background(), film.ID)
	if !apperrors.Is(err, apperrors.KindDatabase) {
		t.Fatalf("expected database error, got %v", err)
	}
	if store.Calls["films.delete"] != 0 {
		t.Fatal("film delete must not run after the link delete failed")
	}
	if !store.HasFilm(film.ID) {
		t.Fatal("film should still exist")
	}
}

func TestDeleteFilmNotFound(t *testing.T) {
	store := testsupport.NewStore()
	svc := newFilmService(store)
	posters := &fakePosterStorage{}
	svc.SetPosterStorage(posters)

	_, err := svc.DeleteFilm(context.Background(), 5)
	if !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(posters.deleted) != 0 {
		t.Fatal("no poster cleanup expected for a missing film")
	}
}

func TestDeleteFilmIgnoresPosterCleanupFailure(t *testing.T) {
	store := testsupport.NewStore()
	film := store.SeedFilm("Stalker", 1979)
	svc := newFilmService(store)
	svc.SetPosterStorage(&fakePosterStorage{deleteErr: errors.New("minio down")})

	if _, err := svc.DeleteFilm(context.Background(), film.ID); err != nil {
		t.Fatalf("poster cleanup failure should not fail the delete: %v", err)
	}
}

func TestPresignPosterUpload(t *testing.T) {
	store := testsupport.NewStore()
	film := store.SeedFilm("Mirror", 1975)
	svc := newFilmService(store)

	if _, err := svc.PresignPosterUpload(context.Background(), film.ID, "cover.jpg", "image/jpeg"); apperrors.KindOf(err) != apperrors.KindInternal {
		t.Fatalf("expected internal error without storage, got %v", err)
	}

	svc.SetPosterStorage(&fakePosterStorage{})
	upload, err := svc.PresignPosterUpload(context.Background(), film.ID, "cover.jpg", "image/jpeg")
	if err != nil {
		t.Fatalf("PresignPosterUpload: %v", err)
	}
	if upload.ObjectKey != "films/1/cover_01234567.jpg" {
		t.Fatalf("unexpected object key %q", upload.ObjectKey)
	}

	if _, err := svc.PresignPosterUpload(context.Background(), 99, "cover.jpg", "image/jpeg"); !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("expected not found for missing film, got %v", err)
	}
}

func TestPosterObjectKey(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"cover.JPG", "films/3/cover_abcdefgh.jpg"},
		{"../../etc/passwd", "films/3/passwd_abcdefgh"},
		{"", "films/3/poster_abcdefgh"},
		{".png", "films/3/poster_abcdefgh.png"},
		{"art/front.webp", "films/3/front_abcdefgh.webp"},
	}
	for _, tt := range tests {
		if got := posterObjectKey(3, tt.filename, "abcdefghijkl"); got != tt.want {
			t.Errorf("posterObjectKey(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
