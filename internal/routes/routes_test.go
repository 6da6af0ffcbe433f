package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"film-catalog/internal/handlers"
	"film-catalog/internal/models"
	"film-catalog/internal/services"
	"film-catalog/internal/testsupport"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type stubPosters struct{}

func (stubPosters) PresignUpload(_ context.Context, filmID int64, filename, contentType string) (*services.PosterUpload, error) {
	key := fmt.Sprintf("films/%d/%s", filmID, filename)
	return &services.PosterUpload{
		ObjectKey:    key,
		PresignedURL: "http://minio.test/" + key + "?signed",
		ContentType:  contentType,
		ExpiresAt:    time.Now().Add(time.Hour),
	}, nil
}

func (stubPosters) DeleteFilmPosters(context.Context, int64) error { return nil }

func newTestApp(store *testsupport.Store, withPosters bool) *fiber.App {
	log := logrus.New()
	log.SetOutput(io.Discard)

	filmService := services.NewFilmService(store.Films(), store.FilmGenres(), log)
	if withPosters {
		filmService.(interface{ SetPosterStorage(services.PosterStorage) }).SetPosterStorage(stubPosters{})
	}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(log)})
	Setup(app, Handlers{
		Films:       handlers.NewFilmHandler(filmService, log),
		Genres:      handlers.NewGenreHandler(services.NewGenreService(store.Genres(), store.FilmGenres(), log), log),
		FilmGenres:  handlers.NewFilmGenreHandler(services.NewFilmGenreService(store.FilmGenres(), log), log),
		WithPosters: withPosters,
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
	return v
}

func message(t *testing.T, data []byte) string {
	t.Helper()
	return decode[map[string]string](t, data)["message"]
}

func TestCreateFilmThenGet(t *testing.T) {
	store := testsupport.NewStore()
	drama := store.SeedGenre("Drama")
	scifi := store.SeedGenre("Sci-Fi")
	app := newTestApp(store, false)

	status, body := do(t, app, fiber.MethodPost, "/films",
		fmt.Sprintf(`{"title":"Stalker","year":1979,"genres":[%d,%d]}`, drama.ID, scifi.ID))
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", status, body)
	}
	created := decode[models.Film](t, body)
	if created.ID == 0 || created.Title != "Stalker" || created.Year != 1979 {
		t.Fatalf("unexpected film %+v", created)
	}

	status, body = do(t, app, fiber.MethodGet, fmt.Sprintf("/films/%d", created.ID), "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if got := decode[models.Film](t, body); got != created {
		t.Fatalf("expected %+v, got %+v", created, got)
	}

	status, body = do(t, app, fiber.MethodGet, fmt.Sprintf("/films/%d/genres", created.ID), "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if genres := decode[[]models.Genre](t, body); len(genres) != 2 {
		t.Fatalf("expected two genres, got %+v", genres)
	}
}

func TestCreateFilmWithUnknownGenreLeavesNoFilm(t *testing.T) {
	store := testsupport.NewStore()
	app := newTestApp(store, false)

	status, body := do(t, app, fiber.MethodPost, "/films", `{"title":"Stalker","year":1979,"genres":[99]}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", status, body)
	}
	if msg := message(t, body); msg != "Failed to execute database query" {
		t.Fatalf("unexpected message %q", msg)
	}

	status, body = do(t, app, fiber.MethodGet, "/films/1", "")
	if status != fiber.StatusNotFound || message(t, body) != "Film not found" {
		t.Fatalf("expected film to be gone, got %d: %s", status, body)
	}
}

func TestUpdateFilmWithEmptyGenresClearsLinks(t *testing.T) {
	store := testsupport.NewStore()
	drama := store.SeedGenre("Drama")
	film := store.SeedFilm("Mirror", 1975, drama.ID)
	app := newTestApp(store, false)

	status, body := do(t, app, fiber.MethodPut, fmt.Sprintf("/films/%d", film.ID), `{"title":"The Mirror","year":1975,"genres":[]}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	if got := decode[models.Film](t, body); got.Title != "The Mirror" {
		t.Fatalf("unexpected film %+v", got)
	}

	status, body = do(t, app, fiber.MethodGet, fmt.Sprintf("/films/%d/genres", film.ID), "")
	if status != fiber.StatusNotFound || message(t, body) != "Genres not found" {
		t.Fatalf("expected no genres, got %d: %s", status, body)
	}
}

func TestUpdateFilmWithUnknownGenreRollsBack(t *testing.T) {
	store := testsupport.NewStore()
	drama := store.SeedGenre("Drama")
	film := store.SeedFilm("Mirror", 1975, drama.ID)
	app := newTestApp(store, false)

	status, body := do(t, app, fiber.MethodPut, fmt.Sprintf("/films/%d", film.ID), `{"title":"Changed","year":2000,"genres":[77]}`)
	if status != fiber.StatusNotFound || message(t, body) != "Genre not found" {
		t.Fatalf("expected 404 Genre not found, got %d: %s", status, body)
	}

	_, body = do(t, app, fiber.MethodGet, fmt.Sprintf("/films/%d", film.ID), "")
	if got := decode[models.Film](t, body); got.Title != "Mirror" || got.Year != 1975 {
		t.Fatalf("film changed despite rollback: %+v", got)
	}
	if ids := store.GenreIDsForFilm(film.ID); len(ids) != 1 || ids[0] != drama.ID {
		t.Fatalf("links changed despite rollback: %v", ids)
	}
	if store.OpenTx != 0 {
		t.Fatalf("transaction left open")
	}
}

func TestDeleteReferencedGenreConflicts(t *testing.T) {
	store := testsupport.NewStore()
	drama := store.SeedGenre("Drama")
	store.SeedFilm("Solaris", 1972, drama.ID)
	app := newTestApp(store, false)

	status, body := do(t, app, fiber.MethodDelete, fmt.Sprintf("/genres/%d", drama.ID), "")
	if status != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", status, body)
	}
	if msg := message(t, body); msg != "Cannot delete genre while it is referenced by at least one film" {
		t.Fatalf("unexpected message %q", msg)
	}
	if store.Calls["genres.delete"] != 0 {
		t.Fatal("genre delete statement ran")
	}

	status, _ = do(t, app, fiber.MethodGet, fmt.Sprintf("/genres/%d", drama.ID), "")
	if status != fiber.StatusOK {
		t.Fatalf("expected genre to remain, got %d", status)
	}
}

func TestDeleteFilmRemovesLinks(t *testing.T) {
	store := testsupport.NewStore()
	drama := store.SeedGenre("Drama")
	film := store.SeedFilm("Solaris", 1972, drama.ID)
	app := newTestApp(store, false)

	status, body := do(t, app, fiber.MethodDelete, fmt.Sprintf("/films/%d", film.ID), "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	if got := decode[models.Film](t, body); got != film {
		t.Fatalf("expected deleted film %+v, got %+v", film, got)
	}
	if store.LinkCount() != 0 {
		t.Fatal("links survived film delete")
	}

	status, _ = do(t, app, fiber.MethodDelete, fmt.Sprintf("/genres/%d", drama.ID), "")
	if status != fiber.StatusOK {
		t.Fatalf("expected genre delete to succeed once unreferenced, got %d", status)
	}
}

func TestDeleteFilmStopsWhenLinksCannotBeRemoved(t *testing.T) {
	store := testsupport.NewStore()
	film := store.SeedFilm("Solaris", 1972)
	store.FailOn("film_genres.delete_by_film", errors.New("connection reset"))
	app := newTestApp(store, false)

	status, body := do(t, app, fiber.MethodDelete, fmt.Sprintf("/films/%d", film.ID), "")
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", status, body)
	}
	if store.Calls["films.delete"] != 0 || !store.HasFilm(film.ID) {
		t.Fatal("film delete ran after link delete failed")
	}
}

func TestCollectionsReturnEmptyArrays(t *testing.T) {
	app := newTestApp(testsupport.NewStore(), false)

	for _, path := range []string{"/films", "/genres", "/films/genres"} {
		t.Run(path, func(t *testing.T) {
			status, body := do(t, app, fiber.MethodGet, path, "")
			if status != fiber.StatusOK {
				t.Fatalf("expected 200, got %d", status)
			}
			if string(body) != "[]" {
				t.Fatalf("expected [], got %s", body)
			}
		})
	}
}

func TestMutationsOnMissingRecords(t *testing.T) {
	store := testsupport.NewStore()
	store.SeedGenre("Drama")
	app := newTestApp(store, false)

	tests := []struct {
		method  string
		path    string
		body    string
		message string
	}{
		{fiber.MethodPut, "/films/42", `{"title":"x","year":1,"genres":[]}`, "Film not found"},
		{fiber.MethodDelete, "/films/42", "", "Film not found"},
		{fiber.MethodPut, "/genres/42", `{"name":"x"}`, "Genre not found"},
		{fiber.MethodDelete, "/genres/42", "", "Genre not found"},
		{fiber.MethodPut, "/films/42/genres/1", `{"film_id":42,"genre_id":1}`, "Record not found"},
		{fiber.MethodDelete, "/films/42/genres/1", "", "Record not found"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			status, body := do(t, app, tt.method, tt.path, tt.body)
			if status != fiber.StatusNotFound {
				t.Fatalf("expected 404, got %d: %s", status, body)
			}
			if msg := message(t, body); msg != tt.message {
				t.Fatalf("expected %q, got %q", tt.message, msg)
			}
		})
	}

	if store.HasFilm(42) || !store.HasGenre(1) || store.LinkCount() != 0 {
		t.Fatal("store mutated by failed requests")
	}
}

func TestInvalidBodies(t *testing.T) {
	app := newTestApp(testsupport.NewStore(), false)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"malformed film", fiber.MethodPost, "/films", `{"title":`},
		{"film without genres", fiber.MethodPost, "/films", `{"title":"x","year":1,"genres":[]}`},
		{"film without year", fiber.MethodPost, "/films", `{"title":"x","genres":[1]}`},
		{"update without genres field", fiber.MethodPut, "/films/1", `{"title":"x","year":1}`},
		{"empty genre", fiber.MethodPost, "/genres", `{}`},
		{"link without genre", fiber.MethodPost, "/films/genres", `{"film_id":1}`},
		{"empty body", fiber.MethodPost, "/genres", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, tt.method, tt.path, tt.body)
			if status != fiber.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", status, body)
			}
			if msg := message(t, body); msg != "Invalid request format" {
				t.Fatalf("unexpected message %q", msg)
			}
		})
	}
}

func TestRouting(t *testing.T) {
	store := testsupport.NewStore()
	drama := store.SeedGenre("Drama")
	store.SeedFilm("Solaris", 1972, drama.ID)
	app := newTestApp(store, false)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{fiber.MethodGet, "/films/", fiber.StatusOK},
		{fiber.MethodGet, "/films/1/", fiber.StatusOK},
		{fiber.MethodGet, "/films/genres/", fiber.StatusOK},
		{fiber.MethodGet, "/genres/1/films/", fiber.StatusOK},
		{fiber.MethodGet, "/nope", fiber.StatusNotFound},
		{fiber.MethodGet, "/films/abc", fiber.StatusNotFound},
		{fiber.MethodGet, "/films/1/genres/1", fiber.StatusMethodNotAllowed},
		{fiber.MethodPatch, "/films", fiber.StatusMethodNotAllowed},
		{fiber.MethodDelete, "/genres", fiber.StatusMethodNotAllowed},
		{fiber.MethodPost, "/films/1/genres", fiber.StatusMethodNotAllowed},
		{fiber.MethodGet, "/films/1/poster", fiber.StatusNotFound},
		{fiber.MethodGet, "/films/-1", fiber.StatusNotFound},
		{fiber.MethodGet, "/films/+1", fiber.StatusNotFound},
		{fiber.MethodDelete, "/genres/-1", fiber.StatusNotFound},
		{fiber.MethodPut, "/films/1/genres/-1", fiber.StatusNotFound},
		{fiber.MethodGet, "/films/99999999999999999999", fiber.StatusNotFound},
		{fiber.MethodHead, "/films", fiber.StatusMethodNotAllowed},
		{fiber.MethodHead, "/genres/1", fiber.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			status, body := do(t, app, tt.method, tt.path, "")
			if status != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, status, body)
			}
			if status != fiber.StatusOK && len(body) != 0 {
				t.Fatalf("expected empty body, got %q", body)
			}
		})
	}
}

func TestFilmGenreLinkLifecycle(t *testing.T) {
	store := testsupport.NewStore()
	drama := store.SeedGenre("Drama")
	scifi := store.SeedGenre("Sci-Fi")
	film := store.SeedFilm("Solaris", 1972)
	app := newTestApp(store, false)

	status, body := do(t, app, fiber.MethodPost, "/films/genres", fmt.Sprintf(`{"film_id":%d,"genre_id":%d}`, film.ID, drama.ID))
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", status, body)
	}
	if got := decode[models.FilmGenre](t, body); got.FilmID != film.ID || got.GenreID != drama.ID {
		t.Fatalf("unexpected link %+v", got)
	}

	status, body = do(t, app, fiber.MethodGet, fmt.Sprintf("/genres/%d/films", drama.ID), "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if films := decode[[]models.Film](t, body); len(films) != 1 || films[0] != film {
		t.Fatalf("unexpected films %+v", films)
	}

	status, body = do(t, app, fiber.MethodPut, fmt.Sprintf("/films/%d/genres/%d", film.ID, drama.ID),
		fmt.Sprintf(`{"film_id":%d,"genre_id":%d}`, film.ID, scifi.ID))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	status, body = do(t, app, fiber.MethodGet, fmt.Sprintf("/genres/%d/films", drama.ID), "")
	if status != fiber.StatusNotFound || message(t, body) != "Films not found" {
		t.Fatalf("expected no films for old genre, got %d: %s", status, body)
	}

	status, _ = do(t, app, fiber.MethodDelete, fmt.Sprintf("/films/%d/genres/%d", film.ID, scifi.ID), "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if store.LinkCount() != 0 {
		t.Fatal("link not removed")
	}
}

func TestPosterUploadURL(t *testing.T) {
	store := testsupport.NewStore()
	film := store.SeedFilm("Solaris", 1972)
	app := newTestApp(store, true)

	status, body := do(t, app, fiber.MethodGet, fmt.Sprintf("/films/%d/poster?filename=solaris.jpg", film.ID), "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	upload := decode[services.PosterUpload](t, body)
	if upload.ObjectKey != "films/1/solaris.jpg" || upload.ContentType != "image/jpeg" {
		t.Fatalf("unexpected upload %+v", upload)
	}

	status, _ = do(t, app, fiber.MethodGet, fmt.Sprintf("/films/%d/poster", film.ID), "")
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 without filename, got %d", status)
	}

	status, body = do(t, app, fiber.MethodGet, "/films/9/poster?filename=x.png", "")
	if status != fiber.StatusNotFound || message(t, body) != "Film not found" {
		t.Fatalf("expected 404, got %d: %s", status, body)
	}
}
