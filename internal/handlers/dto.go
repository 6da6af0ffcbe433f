package handlers

type FilmRequest struct {
	Title  string  `json:"title" validate:"required" example:"Stalker"`
	Year   int     `json:"year" validate:"required" example:"1979"`
	Genres []int64 `json:"genres" validate:"required,min=1"`
}

// FilmUpdateRequest allows an empty genres list, which clears the film's
// genres, but the field itself must be present.
type FilmUpdateRequest struct {
	Title  string  `json:"title" validate:"required" example:"Stalker"`
	Year   int     `json:"year" validate:"required" example:"1979"`
	Genres []int64 `json:"genres" validate:"required"`
}

type GenreRequest struct {
	Name string `json:"name" validate:"required" example:"Drama"`
}

type FilmGenreRequest struct {
	FilmID  int64 `json:"film_id" validate:"required" example:"1"`
	GenreID int64 `json:"genre_id" validate:"required" example:"2"`
}
