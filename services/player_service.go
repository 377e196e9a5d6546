// services/player_service.go - Player-facing read surfaces
package services

import (
	"time"

	"github.com/reedse/ringette-leagues2/models"

	"gorm.io/gorm"
)

type PlayerService struct {
	db    *gorm.DB
	authz *AuthzService
}

func NewPlayerService(db *gorm.DB, authz *AuthzService) *PlayerService {
	return &PlayerService{db: db, authz: authz}
}

// StatSummary aggregates a player's numbers across a season.
type StatSummary struct {
	SeasonID    uint `json:"season_id"`
	GamesPlayed int  `json:"games_played"`
	Goals       int  `json:"goals"`
	Assists     int  `json:"assists"`
	Points      int  `json:"points"`
	ShotsOnGoal int  `json:"shots_on_goal"`
}

// SeasonStats sums the actor's stat lines for one season.
func (s *PlayerService) SeasonStats(actor *models.User, seasonID uint) (*StatSummary, error) {
	if actor.Player == nil {
		return nil, ErrForbidden
	}
	var lines []models.PlayerGameStat
	err := s.db.Joins("JOIN games ON games.id = player_game_stats.game_id").
		Where("player_game_stats.player_id = ? AND games.season_id = ?", actor.Player.ID, seasonID).
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	summary := &StatSummary{SeasonID: seasonID, GamesPlayed: len(lines)}
	for _, line := range lines {
		summary.Goals += line.Goals
		summary.Assists += line.Assists
		summary.ShotsOnGoal += line.ShotsOnGoal
	}
	summary.Points = summary.Goals + summary.Assists
	return summary, nil
}

// AllStats returns the actor's raw stat lines, newest game first.
func (s *PlayerService) AllStats(actor *models.User) ([]models.PlayerGameStat, error) {
	if actor.Player == nil {
		return nil, ErrForbidden
	}
	var lines []models.PlayerGameStat
	err := s.db.Joins("JOIN games ON games.id = player_game_stats.game_id").
		Where("player_game_stats.player_id = ?", actor.Player.ID).
		Preload("Game").Preload("Game.HomeTeam").Preload("Game.AwayTeam").
		Order("games.game_date_time desc").
		Find(&lines).Error
	return lines, err
}

// Schedule holds a player's games split around now.
type Schedule struct {
	Upcoming []models.Game `json:"upcoming"`
	Past     []models.Game `json:"past"`
}

// Schedule lists games for every team the actor is rostered on.
func (s *PlayerService) Schedule(actor *models.User) (*Schedule, error) {
	if actor.Player == nil {
		return nil, ErrForbidden
	}
	teamIDs, err := s.rosteredTeamIDs(actor.Player.ID)
	if err != nil {
		return nil, err
	}
	sched := &Schedule{Upcoming: []models.Game{}, Past: []models.Game{}}
	if len(teamIDs) == 0 {
		return sched, nil
	}
	now := time.Now()
	err = s.db.Where("home_team_id IN ? OR away_team_id IN ?", teamIDs, teamIDs).
		Where("game_date_time >= ?", now).
		Preload("HomeTeam").Preload("AwayTeam").
		Order("game_date_time asc").
		Find(&sched.Upcoming).Error
	if err != nil {
		return nil, err
	}
	err = s.db.Where("home_team_id IN ? OR away_team_id IN ?", teamIDs, teamIDs).
		Where("game_date_time < ?", now).
		Preload("HomeTeam").Preload("AwayTeam").
		Order("game_date_time desc").
		Find(&sched.Past).Error
	if err != nil {
		return nil, err
	}
	return sched, nil
}

// Teams lists the teams the actor is rostered on, with league context.
func (s *PlayerService) Teams(actor *models.User) ([]models.Team, error) {
	if actor.Player == nil {
		return nil, ErrForbidden
	}
	teamIDs, err := s.rosteredTeamIDs(actor.Player.ID)
	if err != nil {
		return nil, err
	}
	teams := []models.Team{}
	if len(teamIDs) == 0 {
		return teams, nil
	}
	err = s.db.Where("id IN ?", teamIDs).
		Preload("Association").Preload("League").Preload("Season").
		Find(&teams).Error
	return teams, err
}

// Teammates lists the roster of one of the actor's teams for a season.
func (s *PlayerService) Teammates(actor *models.User, teamID, seasonID uint) ([]models.RosterEntry, error) {
	if actor.Player == nil {
		return nil, ErrForbidden
	}
	var count int64
	err := s.db.Model(&models.RosterEntry{}).
		Where("player_id = ? AND team_id = ?", actor.Player.ID, teamID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrForbidden
	}
	var entries []models.RosterEntry
	err = s.db.Where("team_id = ? AND season_id = ?", teamID, seasonID).
		Preload("Player").
		Find(&entries).Error
	return entries, err
}

func (s *PlayerService) rosteredTeamIDs(playerID uint) ([]uint, error) {
	var teamIDs []uint
	err := s.db.Model(&models.RosterEntry{}).
		Where("player_id = ?", playerID).
		Distinct().
		Pluck("team_id", &teamIDs).Error
	return teamIDs, err
}
