// services/entitlements.go - Subscription entitlement gate
package services

import (
	"time"

	"github.com/reedse/ringette-leagues2/models"

	"gorm.io/gorm"
)

// EntitlementChecker is the boundary to the subscription/billing system.
// The rest of the app only ever asks a yes/no question.
type EntitlementChecker interface {
	IsEntitled(userID uint, feature string) bool
}

// SubscriptionEntitlements answers entitlement checks from the
// subscriptions table, which an external billing integration keeps
// up to date.
type SubscriptionEntitlements struct {
	db *gorm.DB
}

func NewSubscriptionEntitlements(db *gorm.DB) *SubscriptionEntitlements {
	return &SubscriptionEntitlements{db: db}
}

func (s *SubscriptionEntitlements) IsEntitled(userID uint, feature string) bool {
	var count int64
	s.db.Model(&models.Subscription{}).
		Where("user_id = ? AND type = ? AND status = ?", userID, feature, models.SubscriptionStatusActive).
		Where("current_period_end IS NULL OR current_period_end > ?", time.Now()).
		Count(&count)
	return count > 0
}
