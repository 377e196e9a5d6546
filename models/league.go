// models/league.go
package models

import "time"

type League struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	Name          string       `json:"name" gorm:"not null;size:255;uniqueIndex:idx_leagues_assoc_name"`
	AssociationID uint         `json:"association_id" gorm:"not null;index;uniqueIndex:idx_leagues_assoc_name"`
	Association   *Association `json:"association,omitempty" gorm:"foreignKey:AssociationID"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`

	Seasons []Season `json:"seasons,omitempty" gorm:"foreignKey:LeagueID"`
	Teams   []Team   `json:"teams,omitempty" gorm:"foreignKey:LeagueID"`
	Games   []Game   `json:"games,omitempty" gorm:"foreignKey:LeagueID"`
}

func (League) TableName() string {
	return "leagues"
}
