// services/account_service.go - Registration and credential checks
package services

import (
	"errors"
	"strings"

	"github.com/reedse/ringette-leagues2/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AccountService struct {
	db     *gorm.DB
	roster *RosterService
}

func NewAccountService(db *gorm.DB, roster *RosterService) *AccountService {
	return &AccountService{db: db, roster: roster}
}

// RegistrationInput carries a signup request. TeamID and JerseyNumber
// are required when the role is player.
type RegistrationInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	TeamID       uint   `json:"team_id"`
	JerseyNumber string `json:"jersey_number"`
}

func (in *RegistrationInput) validate() error {
	v := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		v["name"] = "name is required"
	}
	if strings.TrimSpace(in.Email) == "" {
		v["email"] = "email is required"
	}
	if len(in.Password) < 8 {
		v["password"] = "password must be at least 8 characters"
	}
	switch in.Role {
	case models.RoleCoach:
	case models.RolePlayer:
		if in.TeamID == 0 {
			v["team_id"] = "team is required for players"
		}
		if strings.TrimSpace(in.JerseyNumber) == "" {
			v["jersey_number"] = "jersey number is required for players"
		}
	default:
		v["role"] = "role must be coach or player"
	}
	if len(v) > 0 {
		return &ValidationError{Fields: v}
	}
	return nil
}

// Register creates the user, attaches the chosen role, and for players
// links or creates the player profile, all in one transaction.
func (s *AccountService) Register(in RegistrationInput) (*models.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: string(hashed),
	}
	var role models.Role
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return NewValidationError("email", "email is already registered")
			}
			return err
		}
		if err := tx.Where("name = ?", in.Role).First(&role).Error; err != nil {
			return err
		}
		if err := tx.Model(user).Association("Roles").Append(&role); err != nil {
			return err
		}
		if in.Role == models.RolePlayer {
			player, err := s.roster.LinkOrCreatePlayer(tx, user, in.TeamID, strings.TrimSpace(in.JerseyNumber))
			if err != nil {
				return err
			}
			user.Player = player
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	user.Roles = []models.Role{role}
	return user, nil
}

// Authenticate checks the credentials and returns the user with roles
// loaded. Wrong email and wrong password are indistinguishable to the
// caller.
func (s *AccountService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Roles").Preload("Player").
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrForbidden
	}
	return &user, nil
}
