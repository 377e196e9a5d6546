// models/team.go
package models

import "time"

type Team struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	Name          string       `json:"name" gorm:"not null;size:255"`
	AssociationID uint         `json:"association_id" gorm:"not null;index"`
	Association   *Association `json:"association,omitempty" gorm:"foreignKey:AssociationID"`
	LeagueID      uint         `json:"league_id" gorm:"not null;index"`
	League        *League      `json:"league,omitempty" gorm:"foreignKey:LeagueID"`

	// Convenience pointer to the team's current season. Roster membership is
	// always resolved through roster_entries with an explicit season, never
	// through this column alone.
	SeasonID uint    `json:"season_id" gorm:"not null;index"`
	Season   *Season `json:"season,omitempty" gorm:"foreignKey:SeasonID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RosterEntries []RosterEntry `json:"roster_entries,omitempty" gorm:"foreignKey:TeamID"`
	HomeGames     []Game        `json:"home_games,omitempty" gorm:"foreignKey:HomeTeamID"`
	AwayGames     []Game        `json:"away_games,omitempty" gorm:"foreignKey:AwayTeamID"`
}

func (Team) TableName() string {
	return "teams"
}
