// models/season.go
package models

import "time"

type Season struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"not null;size:100"`
	LeagueID  uint       `json:"league_id" gorm:"not null;index"`
	League    *League    `json:"league,omitempty" gorm:"foreignKey:LeagueID"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Teams []Team `json:"teams,omitempty" gorm:"foreignKey:SeasonID"`
	Games []Game `json:"games,omitempty" gorm:"foreignKey:SeasonID"`
}

func (Season) TableName() string {
	return "seasons"
}
