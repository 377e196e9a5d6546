// models/roster_entry.go
package models

import "time"

// RosterEntry records a player's membership on a team for one season.
// It is the only place season-scoped membership lives.
type RosterEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PlayerID  uint      `json:"player_id" gorm:"not null;uniqueIndex:idx_roster_player_team_season"`
	Player    *Player   `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
	TeamID    uint      `json:"team_id" gorm:"not null;index;uniqueIndex:idx_roster_player_team_season"`
	Team      *Team     `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	SeasonID  uint      `json:"season_id" gorm:"not null;index;uniqueIndex:idx_roster_player_team_season"`
	Season    *Season   `json:"season,omitempty" gorm:"foreignKey:SeasonID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RosterEntry) TableName() string {
	return "roster_entries"
}
