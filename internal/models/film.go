package models

type Film struct {
	ID    int64  `gorm:"primaryKey" json:"id" example:"1"`
	Title string `gorm:"not null" json:"title" example:"Stalker"`
	Year  int    `gorm:"not null" json:"year" example:"1979"`
}

func (Film) TableName() string {
	return "films"
}
