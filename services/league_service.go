// services/league_service.go - Association, league, season, team administration
package services

import (
	"errors"
	"strings"
	"time"

	"github.com/reedse/ringette-leagues2/models"

	"gorm.io/gorm"
)

type LeagueService struct {
	db    *gorm.DB
	authz *AuthzService
}

func NewLeagueService(db *gorm.DB, authz *AuthzService) *LeagueService {
	return &LeagueService{db: db, authz: authz}
}

// Associations

func (s *LeagueService) Associations(actor *models.User) ([]models.Association, error) {
	if !s.authz.CanManageLeagueStructure(actor) {
		return nil, ErrForbidden
	}
	var assocs []models.Association
	err := s.db.Order("name asc").Find(&assocs).Error
	return assocs, err
}

func (s *LeagueService) CreateAssociation(actor *models.User, name string) (*models.Association, error) {
	if !s.authz.CanManageLeagueStructure(actor) {
		return nil, ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "name is required")
	}
	assoc := &models.Association{Name: name}
	if err := s.db.Create(assoc).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return assoc, nil
}

func (s *LeagueService) UpdateAssociation(actor *models.User, id uint, name string) (*models.Association, error) {
	if !s.authz.CanManageLeagueStructure(actor) {
		return nil, ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "name is required")
	}
	var assoc models.Association
	if err := s.db.First(&assoc, id).Error; err != nil {
		return nil, notFound(err)
	}
	assoc.Name = name
	if err := s.db.Save(&assoc).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &assoc, nil
}

// DeleteAssociation refuses while leagues still hang off the record.
func (s *LeagueService) DeleteAssociation(actor *models.User, id uint) error {
	if !s.authz.CanManageLeagueStructure(actor) {
		return ErrForbidden
	}
	var count int64
	if err := s.db.Model(&models.League{}).Where("association_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	return deleteByID(s.db, &models.Association{}, id)
}

// Leagues

func (s *LeagueService) Leagues(actor *models.User) ([]models.League, error) {
	if !s.authz.CanManageLeagueStructure(actor) {
		return nil, ErrForbidden
	}
	var leagues []models.League
	err := s.db.Preload("Association").Order("name asc").Find(&leagues).Error
	return leagues, err
}

type LeagueInput struct {
	Name          string `json:"name"`
	AssociationID uint   `json:"association_id"`
}

func (s *LeagueService) CreateLeague(actor *models.User, in LeagueInput) (*models.League, error) {
	if !s.authz.CanManageLeagueStructure(actor) {
		return nil, ErrForbidden
	}
	if err := s.validateLeague(&in); err != nil {
		return nil, err
	}
	league := &models.League{Name: in.Name, AssociationID: in.AssociationID}
	if err := s.db.Create(league).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return league, nil
}

func (s *LeagueService) UpdateLeague(actor *models.User, id uint, in LeagueInput) (*models.League, error) {
	if !s.authz.CanManageLeagueStructure(actor) {
		return nil, ErrForbidden
	}
	if err := s.validateLeague(&in); err != nil {
		return nil, err
	}
	var league models.League
	if err := s.db.First(&league, id).Error; err != nil {
		return nil, notFound(err)
	}
	league.Name = in.Name
	league.AssociationID = in.AssociationID
	if err := s.db.Save(&league).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &league, nil
}

func (s *LeagueService) DeleteLeague(actor *models.User, id uint) error {
	if !s.authz.CanManageLeagueStructure(actor) {
		return ErrForbidden
	}
	var teams int64
	if err := s.db.Model(&models.Team{}).Where("league_id = ?", id).Count(&teams).Error; err != nil {
		return err
	}
	var seasons int64
	if err := s.db.Model(&models.Season{}).Where("league_id = ?", id).Count(&seasons).Error; err != nil {
		return err
	}
	if teams > 0 || seasons > 0 {
		return ErrConflict
	}
	return deleteByID(s.db, &models.League{}, id)
}

func (s *LeagueService) validateLeague(in *LeagueInput) error {
	in.Name = strings.TrimSpace(in.Name)
	v := map[string]string{}
	if in.Name == "" {
		v["name"] = "name is required"
	}
	if in.AssociationID == 0 {
		v["association_id"] = "association is required"
	} else if err := s.db.First(&models.Association{}, in.AssociationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			v["association_id"] = "association does not exist"
		} else {
			return err
		}
	}
	if len(v) > 0 {
		return &ValidationError{Fields: v}
	}
	return nil
}

// Seasons

func (s *LeagueService) Seasons(actor *models.User) ([]models.Season, error) {
	if !s.authz.CanManageLeagueStructure(actor) {
		return nil, ErrForbidden
	}
	var seasons []models.Season
	err := s.db.Order("start_date desc").Find(&seasons).Error
	return seasons, err
}

type SeasonInput struct {
	Name      string     `json:"name"`
	LeagueID  uint       `json:"league_id"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

func (s *LeagueService) CreateSeason(actor *models.User, in SeasonInput) (*models.Season, error) {
	if !s.authz.CanManageLeagueStructure(actor) {
		return nil, ErrForbidden
	}
	if err := s.validateSeason(&in); err != nil {
		return nil, err
	}
	season := &models.Season{Name: in.Name, LeagueID: in.LeagueID, StartDate: in.StartDate, EndDate: in.EndDate}
	if err := s.db.Create(season).Error; err != nil {
		return nil, err
	}
	return season, nil
}

func (s *LeagueService) UpdateSeason(actor *models.User, id uint, in SeasonInput) (*models.Season, error) {
	if !s.authz.CanManageLeagueStructure(actor) {
		return nil, ErrForbidden
	}
	if err := s.validateSeason(&in); err != nil {
		return nil, err
	}
	var season models.Season
	if err := s.db.First(&season, id).Error; err != nil {
		return nil, notFound(err)
	}
	season.Name = in.Name
	season.LeagueID = in.LeagueID
	season.StartDate = in.StartDate
	season.EndDate = in.EndDate
	if err := s.db.Save(&season).Error; err != nil {
		return nil, err
	}
	return &season, nil
}

func (s *LeagueService) DeleteSeason(actor *models.User, id uint) error {
	if !s.authz.CanManageLeagueStructure(actor) {
		return ErrForbidden
	}
	var count int64
	if err := s.db.Model(&models.Team{}).Where("season_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	if err := s.db.Model(&models.RosterEntry{}).Where("season_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	return deleteByID(s.db, &models.Season{}, id)
}

func (s *LeagueService) validateSeason(in *SeasonInput) error {
	in.Name = strings.TrimSpace(in.Name)
	v := map[string]string{}
	if in.Name == "" {
		v["name"] = "name is required"
	}
	if in.LeagueID == 0 {
		v["league_id"] = "league is required"
	} else {
		var count int64
		if err := s.db.Model(&models.League{}).Where("id = ?", in.LeagueID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			v["league_id"] = "league does not exist"
		}
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		v["end_date"] = "end date must not precede start date"
	}
	if len(v) > 0 {
		return &ValidationError{Fields: v}
	}
	return nil
}

// Teams

func (s *LeagueService) Teams(actor *models.User) ([]models.Team, error) {
	if !s.authz.CanManageLeagueStructure(actor) {
		return nil, ErrForbidden
	}
	var teams []models.Team
	err := s.db.Preload("Association").Preload("League").Preload("Season").
		Order("name asc").Find(&teams).Error
	return teams, err
}

type TeamInput struct {
	Name          string `json:"name"`
	AssociationID uint   `json:"association_id"`
	LeagueID      uint   `json:"league_id"`
	SeasonID      uint   `json:"season_id"`
}

func (s *LeagueService) CreateTeam(actor *models.User, in TeamInput) (*models.Team, error) {
	if !s.authz.CanManageLeagueStructure(actor) {
		return nil, ErrForbidden
	}
	if err := s.validateTeam(&in); err != nil {
		return nil, err
	}
	team := &models.Team{
		Name:          in.Name,
		AssociationID: in.AssociationID,
		LeagueID:      in.LeagueID,
		SeasonID:      in.SeasonID,
	}
	if err := s.db.Create(team).Error; err != nil {
		return nil, err
	}
	return team, nil
}

func (s *LeagueService) UpdateTeam(actor *models.User, id uint, in TeamInput) (*models.Team, error) {
	if !s.authz.CanManageLeagueStructure(actor) {
		return nil, ErrForbidden
	}
	if err := s.validateTeam(&in); err != nil {
		return nil, err
	}
	var team models.Team
	if err := s.db.First(&team, id).Error; err != nil {
		return nil, notFound(err)
	}
	team.Name = in.Name
	team.AssociationID = in.AssociationID
	team.LeagueID = in.LeagueID
	team.SeasonID = in.SeasonID
	if err := s.db.Save(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// DeleteTeam refuses while roster entries or games reference the team,
// and clears any coach assignment on the way out.
func (s *LeagueService) DeleteTeam(actor *models.User, id uint) error {
	if !s.authz.CanManageLeagueStructure(actor) {
		return ErrForbidden
	}
	var count int64
	if err := s.db.Model(&models.RosterEntry{}).Where("team_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	if err := s.db.Model(&models.Game{}).
		Where("home_team_id = ? OR away_team_id = ?", id, id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("managed_team_id = ?", id).
			Update("managed_team_id", nil).Error; err != nil {
			return err
		}
		return deleteByID(tx, &models.Team{}, id)
	})
}

func (s *LeagueService) validateTeam(in *TeamInput) error {
	in.Name = strings.TrimSpace(in.Name)
	v := map[string]string{}
	if in.Name == "" {
		v["name"] = "name is required"
	}
	checks := []struct {
		field string
		model interface{}
		id    uint
	}{
		{"association_id", &models.Association{}, in.AssociationID},
		{"league_id", &models.League{}, in.LeagueID},
		{"season_id", &models.Season{}, in.SeasonID},
	}
	for _, c := range checks {
		if c.id == 0 {
			v[c.field] = c.field + " is required"
			continue
		}
		if err := s.db.First(c.model, c.id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				v[c.field] = "referenced record does not exist"
			} else {
				return err
			}
		}
	}
	if len(v) > 0 {
		return &ValidationError{Fields: v}
	}
	return nil
}

// Coach assignment

// AssignCoach points a coach account at a team. Passing teamID 0 clears
// the assignment.
func (s *LeagueService) AssignCoach(actor *models.User, coachUserID, teamID uint) error {
	if !s.authz.CanManageLeagueStructure(actor) {
		return ErrForbidden
	}
	coach, err := s.authz.Subject(coachUserID)
	if err != nil {
		return err
	}
	if !coach.IsCoach() {
		return NewValidationError("user_id", "user is not a coach")
	}
	if teamID == 0 {
		return s.db.Model(&models.User{}).Where("id = ?", coachUserID).
			Update("managed_team_id", nil).Error
	}
	if err := s.db.First(&models.Team{}, teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewValidationError("team_id", "team does not exist")
		}
		return err
	}
	return s.db.Model(&models.User{}).Where("id = ?", coachUserID).
		Update("managed_team_id", teamID).Error
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func deleteByID(db *gorm.DB, model interface{}, id uint) error {
	res := db.Delete(model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
