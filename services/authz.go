// services/authz.go - Role and ownership checks
//
// Every permission in the system goes through this service so the full
// action x role matrix lives in one place. Each predicate stands alone;
// there is no role inheritance. Mutating paths must pass a freshly
// loaded subject (see Subject) so ownership is re-derived from current
// state, never from client-supplied claims.
package services

import (
	"github.com/reedse/ringette-leagues2/models"

	"gorm.io/gorm"
)

type AuthzService struct {
	db           *gorm.DB
	entitlements EntitlementChecker
}

func NewAuthzService(db *gorm.DB, entitlements EntitlementChecker) *AuthzService {
	return &AuthzService{db: db, entitlements: entitlements}
}

// Subject loads the acting user with roles and linked player from the
// database. Handlers call this with the id from the JWT; everything else
// about the user comes from the store.
func (s *AuthzService) Subject(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Roles").Preload("Player").First(&user, userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CanManageLeagueStructure covers association, league, season and team
// administration, including coach assignment.
func (s *AuthzService) CanManageLeagueStructure(u *models.User) bool {
	return u.IsLeagueAdmin()
}

// CanManageRoster permits league admins everywhere and coaches on their
// own managed team.
func (s *AuthzService) CanManageRoster(u *models.User, teamID uint) bool {
	if u.IsLeagueAdmin() {
		return true
	}
	return u.IsCoach() && u.ManagedTeamID != nil && *u.ManagedTeamID == teamID
}

// CanManageGame permits league admins everywhere and coaches whose
// managed team is the home or away team of the game.
func (s *AuthzService) CanManageGame(u *models.User, g *models.Game) bool {
	if u.IsLeagueAdmin() {
		return true
	}
	return u.IsCoach() && u.ManagedTeamID != nil && g.InvolvesTeam(*u.ManagedTeamID)
}

// CanManageClip permits league admins and the creating coach.
func (s *AuthzService) CanManageClip(u *models.User, c *models.Clip) bool {
	if u.IsLeagueAdmin() {
		return true
	}
	return u.IsCoach() && c.CoachUserID == u.ID
}

// CanViewClip decides clip visibility: admins always, the creating coach,
// or an entitled player the clip was shared with. The caller must treat a
// false result exactly like a missing clip.
func (s *AuthzService) CanViewClip(u *models.User, c *models.Clip) bool {
	if u.IsLeagueAdmin() {
		return true
	}
	if u.IsCoach() && c.CoachUserID == u.ID {
		return true
	}
	if u.IsPlayer() && u.Player != nil && s.entitlements.IsEntitled(u.ID, models.FeatureClips) {
		var count int64
		s.db.Model(&models.ClipShare{}).
			Where("clip_id = ? AND player_id = ?", c.ID, u.Player.ID).
			Count(&count)
		return count > 0
	}
	return false
}

// CanListClips gates the clip listing surfaces. Coaches see their own
// clips; players need the clips entitlement; admins see everything.
func (s *AuthzService) CanListClips(u *models.User) bool {
	if u.IsLeagueAdmin() || u.IsCoach() {
		return true
	}
	return u.IsPlayer() && s.entitlements.IsEntitled(u.ID, models.FeatureClips)
}
