// models/penalty.go
package models

import "time"

// PenaltyCode is a static lookup of infraction codes.
type PenaltyCode struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Code           string `json:"code" gorm:"uniqueIndex;not null;size:20"`
	Name           string `json:"name" gorm:"not null;size:100"`
	DefaultMinutes int    `json:"default_minutes" gorm:"not null"`
}

func (PenaltyCode) TableName() string {
	return "penalty_codes"
}

// GamePenalty is a per-incident record. A player can take any number of
// penalties in one game, so there is no uniqueness constraint.
type GamePenalty struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	GameID        uint         `json:"game_id" gorm:"not null;index"`
	Game          *Game        `json:"game,omitempty" gorm:"foreignKey:GameID"`
	PlayerID      uint         `json:"player_id" gorm:"not null;index"`
	Player        *Player      `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
	TeamID        uint         `json:"team_id" gorm:"not null;index"`
	Team          *Team        `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	PenaltyCodeID uint         `json:"penalty_code_id" gorm:"not null"`
	PenaltyCode   *PenaltyCode `json:"penalty_code,omitempty" gorm:"foreignKey:PenaltyCodeID"`
	Period        int          `json:"period" gorm:"not null"`
	TimeOffClock  string       `json:"time_off_clock" gorm:"not null;size:10"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (GamePenalty) TableName() string {
	return "game_penalties"
}
