// models/player_game_stat.go
package models

import "time"

// PlayerGameStat is one stat line per (game, player). The team column
// records who the player represented in that specific game, since a
// mid-season transfer can change affiliation game to game.
type PlayerGameStat struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	GameID      uint    `json:"game_id" gorm:"not null;uniqueIndex:idx_stats_game_player"`
	Game        *Game   `json:"game,omitempty" gorm:"foreignKey:GameID"`
	PlayerID    uint    `json:"player_id" gorm:"not null;index;uniqueIndex:idx_stats_game_player"`
	Player      *Player `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
	TeamID      uint    `json:"team_id" gorm:"not null;index"`
	Team        *Team   `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	Goals       int     `json:"goals" gorm:"default:0"`
	Assists     int     `json:"assists" gorm:"default:0"`
	ShotsOnGoal int     `json:"shots_on_goal" gorm:"default:0"`
	// Goalie-only columns
	Saves        *int      `json:"saves"`
	GoalsAgainst *int      `json:"goals_against"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (PlayerGameStat) TableName() string {
	return "player_game_stats"
}
