// models/role.go
package models

import "time"

const (
	RoleLeagueAdmin = "league_admin"
	RoleCoach       = "coach"
	RolePlayer      = "player"
)

// rolePrecedence orders roles from most to least privileged; PrimaryRole
// picks the first one a user holds.
var rolePrecedence = []string{RoleLeagueAdmin, RoleCoach, RolePlayer}

type Role struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:50"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Users []User `json:"users,omitempty" gorm:"many2many:role_user"`
}

func (Role) TableName() string {
	return "roles"
}
