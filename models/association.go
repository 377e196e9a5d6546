// models/association.go
package models

import "time"

// Association is the top-level organizational body owning leagues.
type Association struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Leagues []League `json:"leagues,omitempty" gorm:"foreignKey:AssociationID"`
	Teams   []Team   `json:"teams,omitempty" gorm:"foreignKey:AssociationID"`
}

func (Association) TableName() string {
	return "associations"
}
