// services/dashboard_service.go - Per-role landing projections
package services

import (
	"time"

	"github.com/reedse/ringette-leagues2/models"

	"gorm.io/gorm"
)

type DashboardService struct {
	db    *gorm.DB
	clips *ClipStore
}

func NewDashboardService(db *gorm.DB, clips *ClipStore) *DashboardService {
	return &DashboardService{db: db, clips: clips}
}

// Dashboard builds the landing payload for whichever role the user
// primarily holds. The payload shape differs per role, so it is a map
// handed straight to the JSON encoder.
func (s *DashboardService) Dashboard(user *models.User) (map[string]interface{}, error) {
	switch user.PrimaryRole() {
	case models.RoleLeagueAdmin:
		return s.adminDashboard()
	case models.RoleCoach:
		return s.coachDashboard(user)
	case models.RolePlayer:
		return s.playerDashboard(user)
	default:
		return nil, ErrForbidden
	}
}

func (s *DashboardService) adminDashboard() (map[string]interface{}, error) {
	counts := map[string]int64{}
	tables := map[string]interface{}{
		"associations": &models.Association{},
		"leagues":      &models.League{},
		"seasons":      &models.Season{},
		"teams":        &models.Team{},
		"players":      &models.Player{},
		"users":        &models.User{},
		"games":        &models.Game{},
	}
	for name, model := range tables {
		var n int64
		if err := s.db.Model(model).Count(&n).Error; err != nil {
			return nil, err
		}
		counts[name] = n
	}
	var completed, scheduled int64
	if err := s.db.Model(&models.Game{}).
		Where("status = ?", models.GameStatusCompleted).Count(&completed).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Game{}).
		Where("status = ?", models.GameStatusScheduled).Count(&scheduled).Error; err != nil {
		return nil, err
	}
	counts["completed_games"] = completed
	counts["scheduled_games"] = scheduled
	return map[string]interface{}{
		"role":   models.RoleLeagueAdmin,
		"counts": counts,
	}, nil
}

func (s *DashboardService) coachDashboard(user *models.User) (map[string]interface{}, error) {
	if user.ManagedTeamID == nil {
		return map[string]interface{}{
			"role":    models.RoleCoach,
			"no_team": true,
		}, nil
	}
	var team models.Team
	if err := s.db.Preload("League").Preload("Season").
		First(&team, *user.ManagedTeamID).Error; err != nil {
		return nil, notFound(err)
	}
	var rosterSize int64
	err := s.db.Model(&models.RosterEntry{}).
		Where("team_id = ? AND season_id = ?", team.ID, team.SeasonID).
		Count(&rosterSize).Error
	if err != nil {
		return nil, err
	}
	upcoming, err := s.upcomingGames([]uint{team.ID}, 5)
	if err != nil {
		return nil, err
	}
	clipCount, err := s.clips.CountByCoach(user.ID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"role":           models.RoleCoach,
		"team":           team,
		"roster_size":    rosterSize,
		"upcoming_games": upcoming,
		"clip_count":     clipCount,
	}, nil
}

func (s *DashboardService) playerDashboard(user *models.User) (map[string]interface{}, error) {
	if user.Player == nil {
		return map[string]interface{}{
			"role":       models.RolePlayer,
			"no_profile": true,
		}, nil
	}
	var teamIDs []uint
	err := s.db.Model(&models.RosterEntry{}).
		Where("player_id = ?", user.Player.ID).
		Distinct().
		Pluck("team_id", &teamIDs).Error
	if err != nil {
		return nil, err
	}
	teams := []models.Team{}
	if len(teamIDs) > 0 {
		if err := s.db.Where("id IN ?", teamIDs).
			Preload("League").Preload("Season").
			Find(&teams).Error; err != nil {
			return nil, err
		}
	}
	upcoming, err := s.upcomingGames(teamIDs, 5)
	if err != nil {
		return nil, err
	}
	var stats []models.PlayerGameStat
	err = s.db.Where("player_id = ?", user.Player.ID).
		Preload("Game").
		Find(&stats).Error
	if err != nil {
		return nil, err
	}
	var sharedClips int64
	err = s.db.Model(&models.ClipShare{}).
		Where("player_id = ?", user.Player.ID).
		Count(&sharedClips).Error
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"role":           models.RolePlayer,
		"player":         user.Player,
		"teams":          teams,
		"upcoming_games": upcoming,
		"stats":          stats,
		"shared_clips":   sharedClips,
	}, nil
}

func (s *DashboardService) upcomingGames(teamIDs []uint, limit int) ([]models.Game, error) {
	games := []models.Game{}
	if len(teamIDs) == 0 {
		return games, nil
	}
	err := s.db.Where("home_team_id IN ? OR away_team_id IN ?", teamIDs, teamIDs).
		Where("game_date_time >= ?", time.Now()).
		Preload("HomeTeam").Preload("AwayTeam").
		Order("game_date_time asc").
		Limit(limit).
		Find(&games).Error
	return games, err
}
