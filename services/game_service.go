// services/game_service.go - Games, stat lines, and penalties
package services

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/reedse/ringette-leagues2/models"

	"gorm.io/gorm"
)

var clockPattern = regexp.MustCompile(`^\d{1,2}:[0-5]\d$`)

type GameService struct {
	db    *gorm.DB
	authz *AuthzService
}

func NewGameService(db *gorm.DB, authz *AuthzService) *GameService {
	return &GameService{db: db, authz: authz}
}

// GameInput carries the writable fields of a game. OpponentTeamID and
// Home describe the game from the acting coach's perspective: Home=true
// puts the coach's team in the home slot.
type GameInput struct {
	SeasonID       uint       `json:"season_id"`
	OpponentTeamID uint       `json:"opponent_team_id"`
	Home           bool       `json:"home"`
	GameDateTime   *time.Time `json:"game_date_time"`
	Location       string     `json:"location"`
	VideoURL       string     `json:"video_url"`
}

// CreateGame schedules a game for the coach's team against an opponent.
// Admins pass the acting team explicitly via teamID.
func (s *GameService) CreateGame(actor *models.User, teamID uint, in GameInput) (*models.Game, error) {
	if !s.authz.CanManageRoster(actor, teamID) {
		return nil, ErrForbidden
	}
	v := map[string]string{}
	if in.SeasonID == 0 {
		v["season_id"] = "season is required"
	}
	if in.OpponentTeamID == 0 {
		v["opponent_team_id"] = "opponent is required"
	} else if in.OpponentTeamID == teamID {
		v["opponent_team_id"] = "a team cannot play itself"
	}
	if in.GameDateTime == nil {
		v["game_date_time"] = "date and time are required"
	}
	if len(v) > 0 {
		return nil, &ValidationError{Fields: v}
	}
	var team models.Team
	if err := s.db.First(&team, teamID).Error; err != nil {
		return nil, notFound(err)
	}
	if err := s.db.First(&models.Team{}, in.OpponentTeamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("opponent_team_id", "opponent team does not exist")
		}
		return nil, err
	}
	game := &models.Game{
		SeasonID:     in.SeasonID,
		LeagueID:     team.LeagueID,
		Status:       models.GameStatusScheduled,
		GameDateTime: *in.GameDateTime,
		Location:     strings.TrimSpace(in.Location),
		VideoURL:     strings.TrimSpace(in.VideoURL),
	}
	if in.Home {
		game.HomeTeamID, game.AwayTeamID = teamID, in.OpponentTeamID
	} else {
		game.HomeTeamID, game.AwayTeamID = in.OpponentTeamID, teamID
	}
	if err := s.db.Create(game).Error; err != nil {
		return nil, err
	}
	return game, nil
}

// GameUpdate carries the fields a coach may change after scheduling.
// Nil pointers leave the stored value alone.
type GameUpdate struct {
	GameDateTime *time.Time `json:"game_date_time"`
	Location     *string    `json:"location"`
	VideoURL     *string    `json:"video_url"`
	Status       *string    `json:"status"`
	HomeScore    *int       `json:"home_score"`
	AwayScore    *int       `json:"away_score"`
}

func (s *GameService) UpdateGame(actor *models.User, gameID uint, in GameUpdate) (*models.Game, error) {
	game, err := s.loadManagedGame(actor, gameID)
	if err != nil {
		return nil, err
	}
	if in.Status != nil {
		valid := false
		for _, opt := range models.GameStatusOptions() {
			if *in.Status == opt {
				valid = true
				break
			}
		}
		if !valid {
			return nil, NewValidationError("status", "unknown game status")
		}
		game.Status = *in.Status
	}
	if in.GameDateTime != nil {
		game.GameDateTime = *in.GameDateTime
	}
	if in.Location != nil {
		game.Location = strings.TrimSpace(*in.Location)
	}
	if in.VideoURL != nil {
		game.VideoURL = strings.TrimSpace(*in.VideoURL)
	}
	if in.HomeScore != nil {
		game.HomeScore = in.HomeScore
	}
	if in.AwayScore != nil {
		game.AwayScore = in.AwayScore
	}
	if err := s.db.Save(game).Error; err != nil {
		return nil, err
	}
	return game, nil
}

func (s *GameService) DeleteGame(actor *models.User, gameID uint) error {
	game, err := s.loadManagedGame(actor, gameID)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", game.ID).Delete(&models.GamePenalty{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", game.ID).Delete(&models.PlayerGameStat{}).Error; err != nil {
			return err
		}
		return tx.Delete(game).Error
	})
}

// Game returns a single game with teams and stat lines for anyone who
// may manage it, or any authenticated viewer when listing is public to
// the roster. Visibility: admins see all, coaches their team's games,
// players games of teams they are rostered on.
func (s *GameService) Game(actor *models.User, gameID uint) (*models.Game, error) {
	var game models.Game
	err := s.db.Preload("HomeTeam").Preload("AwayTeam").Preload("Season").
		Preload("PlayerStats").Preload("PlayerStats.Player").
		Preload("Penalties").Preload("Penalties.Player").Preload("Penalties.PenaltyCode").
		First(&game, gameID).Error
	if err != nil {
		return nil, notFound(err)
	}
	ok, err := s.canViewGame(actor, &game)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return &game, nil
}

// GamesForTeam lists a team's games in schedule order.
func (s *GameService) GamesForTeam(actor *models.User, teamID uint) ([]models.Game, error) {
	ok, err := s.canViewTeam(actor, teamID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	var games []models.Game
	err = s.db.Where("home_team_id = ? OR away_team_id = ?", teamID, teamID).
		Preload("HomeTeam").Preload("AwayTeam").
		Order("game_date_time asc").
		Find(&games).Error
	return games, err
}

// StatLineInput is one row of the per-player stat sheet.
type StatLineInput struct {
	PlayerID     uint `json:"player_id"`
	TeamID       uint `json:"team_id"`
	Goals        int  `json:"goals"`
	Assists      int  `json:"assists"`
	ShotsOnGoal  int  `json:"shots_on_goal"`
	Saves        *int `json:"saves"`
	GoalsAgainst *int `json:"goals_against"`
}

// SaveStats upserts the stat lines for a game. Lines are keyed by
// (game, player); resubmitting a sheet overwrites earlier numbers
// instead of stacking new rows.
func (s *GameService) SaveStats(actor *models.User, gameID uint, lines []StatLineInput) error {
	game, err := s.loadManagedGame(actor, gameID)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if line.PlayerID == 0 || line.TeamID == 0 {
			return NewValidationError("lines", "player and team are required on every line")
		}
		if !game.InvolvesTeam(line.TeamID) {
			return NewValidationError("lines", "stat line team is not playing this game")
		}
		if line.Goals < 0 || line.Assists < 0 || line.ShotsOnGoal < 0 {
			return NewValidationError("lines", "stat values must not be negative")
		}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, line := range lines {
			var existing models.PlayerGameStat
			err := tx.Where("game_id = ? AND player_id = ?", game.ID, line.PlayerID).
				First(&existing).Error
			switch {
			case err == nil:
				existing.TeamID = line.TeamID
				existing.Goals = line.Goals
				existing.Assists = line.Assists
				existing.ShotsOnGoal = line.ShotsOnGoal
				existing.Saves = line.Saves
				existing.GoalsAgainst = line.GoalsAgainst
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				stat := models.PlayerGameStat{
					GameID:       game.ID,
					PlayerID:     line.PlayerID,
					TeamID:       line.TeamID,
					Goals:        line.Goals,
					Assists:      line.Assists,
					ShotsOnGoal:  line.ShotsOnGoal,
					Saves:        line.Saves,
					GoalsAgainst: line.GoalsAgainst,
				}
				if err := tx.Create(&stat).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}
		return nil
	})
}

// PenaltyInput is one penalty entry. ID is set when updating an
// existing row.
type PenaltyInput struct {
	ID            uint   `json:"id"`
	PlayerID      uint   `json:"player_id"`
	TeamID        uint   `json:"team_id"`
	PenaltyCodeID uint   `json:"penalty_code_id"`
	Period        int    `json:"period"`
	TimeOffClock  string `json:"time_off_clock"`
}

// SavePenalties replaces the penalty sheet for a game: entries with IDs
// update in place, entries without are created, and stored rows absent
// from the submission are removed. The same player may take the same
// penalty twice in a game, so no uniqueness applies.
func (s *GameService) SavePenalties(actor *models.User, gameID uint, entries []PenaltyInput) error {
	game, err := s.loadManagedGame(actor, gameID)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.PlayerID == 0 || e.TeamID == 0 || e.PenaltyCodeID == 0 {
			return NewValidationError("penalties", "player, team, and code are required on every entry")
		}
		if !game.InvolvesTeam(e.TeamID) {
			return NewValidationError("penalties", "penalty team is not playing this game")
		}
		if e.Period < 1 || e.Period > 4 {
			return NewValidationError("penalties", "period must be between 1 and 4")
		}
		if !clockPattern.MatchString(e.TimeOffClock) {
			return NewValidationError("penalties", "time off clock must be mm:ss")
		}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		keep := make([]uint, 0, len(entries))
		for _, e := range entries {
			if e.ID != 0 {
				res := tx.Model(&models.GamePenalty{}).
					Where("id = ? AND game_id = ?", e.ID, game.ID).
					Updates(map[string]interface{}{
						"player_id":       e.PlayerID,
						"team_id":         e.TeamID,
						"penalty_code_id": e.PenaltyCodeID,
						"period":          e.Period,
						"time_off_clock":  e.TimeOffClock,
					})
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return ErrNotFound
				}
				keep = append(keep, e.ID)
				continue
			}
			penalty := models.GamePenalty{
				GameID:        game.ID,
				PlayerID:      e.PlayerID,
				TeamID:        e.TeamID,
				PenaltyCodeID: e.PenaltyCodeID,
				Period:        e.Period,
				TimeOffClock:  e.TimeOffClock,
			}
			if err := tx.Create(&penalty).Error; err != nil {
				return err
			}
			keep = append(keep, penalty.ID)
		}
		q := tx.Where("game_id = ?", game.ID)
		if len(keep) > 0 {
			q = q.Where("id NOT IN ?", keep)
		}
		return q.Delete(&models.GamePenalty{}).Error
	})
}

// PenaltyCodes lists the rulebook codes for penalty entry forms.
func (s *GameService) PenaltyCodes() ([]models.PenaltyCode, error) {
	var codes []models.PenaltyCode
	err := s.db.Order("code asc").Find(&codes).Error
	return codes, err
}

func (s *GameService) loadManagedGame(actor *models.User, gameID uint) (*models.Game, error) {
	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		return nil, notFound(err)
	}
	if !s.authz.CanManageGame(actor, &game) {
		return nil, ErrForbidden
	}
	return &game, nil
}

func (s *GameService) canViewGame(actor *models.User, game *models.Game) (bool, error) {
	if actor.IsLeagueAdmin() {
		return true, nil
	}
	if actor.IsCoach() && actor.ManagedTeamID != nil && game.InvolvesTeam(*actor.ManagedTeamID) {
		return true, nil
	}
	if actor.IsPlayer() && actor.Player != nil {
		var count int64
		err := s.db.Model(&models.RosterEntry{}).
			Where("player_id = ? AND team_id IN ?", actor.Player.ID,
				[]uint{game.HomeTeamID, game.AwayTeamID}).
			Count(&count).Error
		if err != nil {
			return false, err
		}
		return count > 0, nil
	}
	return false, nil
}

func (s *GameService) canViewTeam(actor *models.User, teamID uint) (bool, error) {
	if actor.IsLeagueAdmin() {
		return true, nil
	}
	if actor.IsCoach() && actor.ManagedTeamID != nil && *actor.ManagedTeamID == teamID {
		return true, nil
	}
	if actor.IsPlayer() && actor.Player != nil {
		var count int64
		err := s.db.Model(&models.RosterEntry{}).
			Where("player_id = ? AND team_id = ?", actor.Player.ID, teamID).
			Count(&count).Error
		if err != nil {
			return false, err
		}
		return count > 0, nil
	}
	return false, nil
}
