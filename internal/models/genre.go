package models

type Genre struct {
	ID   int64  `gorm:"primaryKey" json:"id" example:"1"`
	Name string `gorm:"not null" json:"name" example:"Drama"`
}

func (Genre) TableName() string {
	return "genres"
}

// FilmGenre links one film to one genre. The pair is the primary key.
type FilmGenre struct {
	FilmID  int64  `gorm:"primaryKey;autoIncrement:false" json:"film_id" example:"1"`
	GenreID int64  `gorm:"primaryKey;autoIncrement:false;index" json:"genre_id" example:"2"`
	Film    *Film  `gorm:"foreignKey:FilmID" json:"-"`
	Genre   *Genre `gorm:"foreignKey:GenreID" json:"-"`
}

func (FilmGenre) TableName() string {
	return "films_genres"
}
