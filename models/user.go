// models/user.go
package models

import (
	"time"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null;size:255" json:"name"`
	Email    string `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// A coach manages at most one team; league admins assign it.
	ManagedTeamID *uint `gorm:"index" json:"managed_team_id,omitempty"`
	ManagedTeam   *Team `gorm:"foreignKey:ManagedTeamID" json:"managed_team,omitempty"`

	// External auth provider identity, if the account came from OAuth
	Provider   string `gorm:"size:50" json:"provider,omitempty"`
	ProviderID string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Roles  []Role  `gorm:"many2many:role_user" json:"roles,omitempty"`
	Player *Player `gorm:"foreignKey:UserID" json:"player,omitempty"`
	Clips  []Clip  `gorm:"foreignKey:CoachUserID" json:"clips,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// HasRole reports whether the user holds the named role. Roles must be
// preloaded or freshly queried by the caller.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

func (u *User) HasAnyRole(names ...string) bool {
	for _, n := range names {
		if u.HasRole(n) {
			return true
		}
	}
	return false
}

// PrimaryRole resolves the role used for dashboard selection when a user
// holds several. Returns "" for a user with no recognized role.
func (u *User) PrimaryRole() string {
	for _, name := range rolePrecedence {
		if u.HasRole(name) {
			return name
		}
	}
	return ""
}

func (u *User) IsLeagueAdmin() bool { return u.HasRole(RoleLeagueAdmin) }
func (u *User) IsCoach() bool       { return u.HasRole(RoleCoach) }
func (u *User) IsPlayer() bool      { return u.HasRole(RolePlayer) }
