// models/game.go
package models

import "time"

// Game lifecycle statuses. Scores stay null until Completed.
const (
	GameStatusScheduled  = "Scheduled"
	GameStatusInProgress = "In Progress"
	GameStatusCompleted  = "Completed"
)

func GameStatusOptions() []string {
	return []string{GameStatusScheduled, GameStatusInProgress, GameStatusCompleted}
}

type Game struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SeasonID     uint      `json:"season_id" gorm:"not null;index"`
	Season       *Season   `json:"season,omitempty" gorm:"foreignKey:SeasonID"`
	LeagueID     uint      `json:"league_id" gorm:"not null;index"`
	League       *League   `json:"league,omitempty" gorm:"foreignKey:LeagueID"`
	HomeTeamID   uint      `json:"home_team_id" gorm:"not null;index"`
	HomeTeam     *Team     `json:"home_team,omitempty" gorm:"foreignKey:HomeTeamID"`
	AwayTeamID   uint      `json:"away_team_id" gorm:"not null;index"`
	AwayTeam     *Team     `json:"away_team,omitempty" gorm:"foreignKey:AwayTeamID"`
	GameDateTime time.Time `json:"game_date_time" gorm:"not null;index"`
	Location     string    `json:"location" gorm:"size:255"`
	HomeScore    *int      `json:"home_score"`
	AwayScore    *int      `json:"away_score"`
	Status       string    `json:"status" gorm:"not null;default:'Scheduled';size:20;index"`
	VideoURL     string    `json:"video_url" gorm:"size:255"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	PlayerStats []PlayerGameStat `json:"player_stats,omitempty" gorm:"foreignKey:GameID"`
	Penalties   []GamePenalty    `json:"penalties,omitempty" gorm:"foreignKey:GameID"`
	Clips       []Clip           `json:"clips,omitempty" gorm:"foreignKey:GameID"`
}

func (Game) TableName() string {
	return "games"
}

// InvolvesTeam reports whether the team played in this game on either side.
func (g *Game) InvolvesTeam(teamID uint) bool {
	return g.HomeTeamID == teamID || g.AwayTeamID == teamID
}
