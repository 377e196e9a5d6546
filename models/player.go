// models/player.go
package models

import "time"

type Player struct {
	ID uint `json:"id" gorm:"primaryKey"`

	// Nullable link to a user account. Coaches seed roster placeholders
	// before the player registers; registration claims the row.
	UserID *uint `json:"user_id" gorm:"index"`
	User   *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`

	FirstName    string     `json:"first_name" gorm:"not null;size:255"`
	LastName     string     `json:"last_name" gorm:"size:255"`
	JerseyNumber string     `json:"jersey_number" gorm:"size:10;index"`
	Position     string     `json:"position" gorm:"size:50"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	RosterEntries []RosterEntry    `json:"roster_entries,omitempty" gorm:"foreignKey:PlayerID"`
	GameStats     []PlayerGameStat `json:"game_stats,omitempty" gorm:"foreignKey:PlayerID"`
	Penalties     []GamePenalty    `json:"penalties,omitempty" gorm:"foreignKey:PlayerID"`
	SharedClips   []ClipShare      `json:"shared_clips,omitempty" gorm:"foreignKey:PlayerID"`
}

func (Player) TableName() string {
	return "players"
}

func (p *Player) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
