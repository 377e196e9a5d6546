// models/clip.go
package models

import "time"

// Clip is a coach-authored time range within a game's video. The struct
// carries the current column names; services.ClipStore maps reads and
// writes onto whichever physical column set (current or legacy) the
// clips table actually has.
type Clip struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	GameID      uint   `json:"game_id" gorm:"not null;index"`
	Game        *Game  `json:"game,omitempty" gorm:"foreignKey:GameID"`
	CoachUserID uint   `json:"coach_user_id" gorm:"not null;index"`
	Coach       *User  `json:"coach,omitempty" gorm:"foreignKey:CoachUserID"`
	Title       string `json:"title" gorm:"column:title;size:255"`
	Description string `json:"description" gorm:"column:description;type:text"`
	VideoURL    string `json:"video_url" gorm:"size:255"`
	StartTime   int    `json:"start_time" gorm:"column:start_time"`
	EndTime     int    `json:"end_time" gorm:"column:end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Shares []ClipShare `json:"shares,omitempty" gorm:"foreignKey:ClipID"`
}

func (Clip) TableName() string {
	return "clips"
}

// ClipShare is the clip_player join row: one share of a clip to a player,
// with an optional coach note. Creating one triggers a clip-shared
// notification to the player's linked user, if any.
type ClipShare struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	ClipID    uint       `json:"clip_id" gorm:"not null;uniqueIndex:idx_clip_player"`
	Clip      *Clip      `json:"clip,omitempty" gorm:"foreignKey:ClipID;constraint:OnDelete:CASCADE"`
	PlayerID  uint       `json:"player_id" gorm:"not null;index;uniqueIndex:idx_clip_player"`
	Player    *Player    `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
	CoachNote string     `json:"coach_note" gorm:"type:text"`
	SentAt    *time.Time `json:"sent_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (ClipShare) TableName() string {
	return "clip_player"
}
