// services/roster_service.go - Season-scoped roster management
package services

import (
	"errors"
	"strings"
	"time"

	"github.com/reedse/ringette-leagues2/models"

	"gorm.io/gorm"
)

type RosterService struct {
	db    *gorm.DB
	authz *AuthzService
}

func NewRosterService(db *gorm.DB, authz *AuthzService) *RosterService {
	return &RosterService{db: db, authz: authz}
}

// CurrentSeasonID resolves the season a team is currently assigned to,
// for callers that did not name one explicitly.
func (s *RosterService) CurrentSeasonID(teamID uint) (uint, error) {
	var team models.Team
	if err := s.db.First(&team, teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return team.SeasonID, nil
}

// Roster lists the entries for a team and season. Season is always
// explicit; a team's roster is a function of the (team, season) pair.
func (s *RosterService) Roster(actor *models.User, teamID, seasonID uint) ([]models.RosterEntry, error) {
	if !s.authz.CanManageRoster(actor, teamID) {
		return nil, ErrForbidden
	}
	var entries []models.RosterEntry
	err := s.db.Where("team_id = ? AND season_id = ?", teamID, seasonID).
		Preload("Player").
		Find(&entries).Error
	return entries, err
}

// AddPlayer puts an existing player on the team's roster for a season.
func (s *RosterService) AddPlayer(actor *models.User, teamID, seasonID, playerID uint) error {
	if !s.authz.CanManageRoster(actor, teamID) {
		return ErrForbidden
	}
	var player models.Player
	if err := s.db.First(&player, playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewValidationError("player_id", "player does not exist")
		}
		return err
	}
	entry := &models.RosterEntry{PlayerID: playerID, TeamID: teamID, SeasonID: seasonID}
	if err := s.db.Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// RemovePlayer takes a player off the roster for a season.
func (s *RosterService) RemovePlayer(actor *models.User, teamID, seasonID, playerID uint) error {
	if !s.authz.CanManageRoster(actor, teamID) {
		return ErrForbidden
	}
	res := s.db.Where("player_id = ? AND team_id = ? AND season_id = ?", playerID, teamID, seasonID).
		Delete(&models.RosterEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PlayerInput carries the fields for a coach-created roster placeholder.
type PlayerInput struct {
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	JerseyNumber string     `json:"jersey_number"`
	Position     string     `json:"position"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
}

// CreatePlayer creates a new unlinked player and rosters them in one
// transaction. Players seeded this way get claimed later when someone
// registers with the matching team and jersey number.
func (s *RosterService) CreatePlayer(actor *models.User, teamID, seasonID uint, in PlayerInput) (*models.Player, error) {
	if !s.authz.CanManageRoster(actor, teamID) {
		return nil, ErrForbidden
	}
	if in.FirstName == "" {
		return nil, NewValidationError("first_name", "first name is required")
	}
	if in.JerseyNumber == "" {
		return nil, NewValidationError("jersey_number", "jersey number is required")
	}
	player := &models.Player{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		JerseyNumber: in.JerseyNumber,
		Position:     in.Position,
		DateOfBirth:  in.DateOfBirth,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(player).Error; err != nil {
			return err
		}
		entry := &models.RosterEntry{PlayerID: player.ID, TeamID: teamID, SeasonID: seasonID}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return player, nil
}

// SearchPlayers finds players by name or jersey number for roster
// building.
func (s *RosterService) SearchPlayers(actor *models.User, query string, excludeIDs []uint, limit int) ([]models.Player, error) {
	if !actor.IsLeagueAdmin() && !actor.IsCoach() {
		return nil, ErrForbidden
	}
	if limit <= 0 {
		limit = 10
	}
	q := s.db.Where("first_name LIKE ? OR last_name LIKE ? OR jersey_number LIKE ?",
		"%"+query+"%", "%"+query+"%", "%"+query+"%")
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	var players []models.Player
	err := q.Limit(limit).Find(&players).Error
	return players, err
}

// LinkOrCreatePlayer attaches a registering user to the roster. If a
// coach seeded an unlinked placeholder on this team with the same
// jersey number, the new account claims it; otherwise a fresh player is
// created and rostered for the team's current season. Runs inside the
// caller's registration transaction so a partial failure leaves neither
// a user without a player nor a dangling roster entry.
func (s *RosterService) LinkOrCreatePlayer(tx *gorm.DB, user *models.User, teamID uint, jerseyNumber string) (*models.Player, error) {
	var player models.Player
	err := tx.Joins("JOIN roster_entries ON roster_entries.player_id = players.id").
		Where("roster_entries.team_id = ?", teamID).
		Where("players.jersey_number = ? AND players.user_id IS NULL", jerseyNumber).
		First(&player).Error
	switch {
	case err == nil:
		// Claim the placeholder; its roster entry already exists.
		player.UserID = &user.ID
		if err := tx.Model(&models.Player{}).Where("id = ?", player.ID).
			Update("user_id", user.ID).Error; err != nil {
			return nil, err
		}
		return &player, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		var team models.Team
		if err := tx.First(&team, teamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewValidationError("team_id", "team does not exist")
			}
			return nil, err
		}
		first, last := SplitName(user.Name)
		player = models.Player{
			UserID:       &user.ID,
			FirstName:    first,
			LastName:     last,
			JerseyNumber: jerseyNumber,
		}
		if err := tx.Create(&player).Error; err != nil {
			return nil, err
		}
		entry := &models.RosterEntry{
			PlayerID: player.ID,
			TeamID:   team.ID,
			SeasonID: team.SeasonID,
		}
		if err := tx.Create(entry).Error; err != nil {
			return nil, err
		}
		return &player, nil
	default:
		return nil, err
	}
}

// SplitName breaks a registration full name into first and last: first
// token, then the remainder, which may be empty.
func SplitName(full string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(full), " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
