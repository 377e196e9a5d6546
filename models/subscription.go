// models/subscription.go
package models

import "time"

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"

	// FeatureClips gates player access to coach-shared clips.
	FeatureClips = "clips"
)

// Subscription is the minimal row behind the entitlement check. Billing
// lifecycle (checkout, webhooks, renewal) happens in an external system
// that writes these rows; this app only ever reads them.
type Subscription struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	UserID           uint       `json:"user_id" gorm:"not null;index"`
	User             *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Type             string     `json:"type" gorm:"not null;size:50"`
	Status           string     `json:"status" gorm:"not null;size:20;index"`
	CurrentPeriodEnd *time.Time `json:"current_period_end"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
