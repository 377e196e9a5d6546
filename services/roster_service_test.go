// services/roster_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/reedse/ringette-leagues2/models"
)

func TestRegistrationClaimsPlaceholderPlayer(t *testing.T) {
	db := openTestDB(t)
	authz := NewAuthzService(db, alwaysEntitled{})
	roster := NewRosterService(db, authz)
	accounts := NewAccountService(db, roster)
	s := makeStructure(t, db)

	// Coach seeded a placeholder with jersey 7 before the player signed up.
	placeholder := makeRosteredPlayer(t, db, s, "Placeholder", "7", nil)

	user, err := accounts.Register(RegistrationInput{
		Name:         "Maya Larsen",
		Email:        "maya@example.com",
		Password:     "long-enough-password",
		Role:         models.RolePlayer,
		TeamID:       s.Team.ID,
		JerseyNumber: "7",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Player == nil || user.Player.ID != placeholder.ID {
		t.Fatal("registration should claim the existing placeholder")
	}

	var claimed models.Player
	if err := db.First(&claimed, placeholder.ID).Error; err != nil {
		t.Fatal(err)
	}
	if claimed.UserID == nil || *claimed.UserID != user.ID {
		t.Error("placeholder not linked to the new account")
	}
	// The placeholder keeps its roster entry; no duplicate is created.
	var entries int64
	db.Model(&models.RosterEntry{}).Where("player_id = ?", placeholder.ID).Count(&entries)
	if entries != 1 {
		t.Errorf("roster entries = %d, want 1", entries)
	}
	if n := countRows(t, db, &models.Player{}); n != 1 {
		t.Errorf("player rows = %d, want 1", n)
	}
}

func TestRegistrationCreatesPlayerWhenNoPlaceholder(t *testing.T) {
	db := openTestDB(t)
	roster := NewRosterService(db, NewAuthzService(db, alwaysEntitled{}))
	accounts := NewAccountService(db, roster)
	s := makeStructure(t, db)

	user, err := accounts.Register(RegistrationInput{
		Name:         "Jo Anne van Dijk",
		Email:        "jo@example.com",
		Password:     "long-enough-password",
		Role:         models.RolePlayer,
		TeamID:       s.Team.ID,
		JerseyNumber: "14",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Player == nil {
		t.Fatal("no player created")
	}
	// First token becomes the first name, remainder the last name.
	if user.Player.FirstName != "Jo" || user.Player.LastName != "Anne van Dijk" {
		t.Errorf("name split = %q / %q", user.Player.FirstName, user.Player.LastName)
	}

	var entry models.RosterEntry
	err = db.Where("player_id = ?", user.Player.ID).First(&entry).Error
	if err != nil {
		t.Fatalf("new player not rostered: %v", err)
	}
	if entry.TeamID != s.Team.ID || entry.SeasonID != s.Season.ID {
		t.Errorf("rostered on team %d season %d", entry.TeamID, entry.SeasonID)
	}
}

func TestRegistrationRollsBackAsAWhole(t *testing.T) {
	db := openTestDB(t)
	roster := NewRosterService(db, NewAuthzService(db, alwaysEntitled{}))
	accounts := NewAccountService(db, roster)
	// No teams exist, so the player link step must fail.

	_, err := accounts.Register(RegistrationInput{
		Name:         "Orphan Candidate",
		Email:        "orphan@example.com",
		Password:     "long-enough-password",
		Role:         models.RolePlayer,
		TeamID:       42,
		JerseyNumber: "3",
	})
	if err == nil {
		t.Fatal("Register should fail for a missing team")
	}
	// A failure partway must not leave a user without a player.
	if n := countRows(t, db, &models.User{}); n != 0 {
		t.Errorf("user rows = %d, want 0", n)
	}
	if n := countRows(t, db, &models.Player{}); n != 0 {
		t.Errorf("player rows = %d, want 0", n)
	}
}

func TestRegistrationDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	roster := NewRosterService(db, NewAuthzService(db, alwaysEntitled{}))
	accounts := NewAccountService(db, roster)

	in := RegistrationInput{
		Name:     "First Coach",
		Email:    "coach@example.com",
		Password: "long-enough-password",
		Role:     models.RoleCoach,
	}
	if _, err := accounts.Register(in); err != nil {
		t.Fatal(err)
	}
	_, err := accounts.Register(in)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("duplicate Register = %v, want ValidationError", err)
	}
	if _, ok := verr.Fields["email"]; !ok {
		t.Errorf("fields = %v, want email", verr.Fields)
	}
}

func TestAuthenticate(t *testing.T) {
	db := openTestDB(t)
	roster := NewRosterService(db, NewAuthzService(db, alwaysEntitled{}))
	accounts := NewAccountService(db, roster)

	if _, err := accounts.Register(RegistrationInput{
		Name:     "Carol Coach",
		Email:    "carol@example.com",
		Password: "long-enough-password",
		Role:     models.RoleCoach,
	}); err != nil {
		t.Fatal(err)
	}

	user, err := accounts.Authenticate("Carol@Example.com", "long-enough-password")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if !user.IsCoach() {
		t.Error("authenticated user missing coach role")
	}

	wrongPassword := func() error {
		_, err := accounts.Authenticate("carol@example.com", "wrong")
		return err
	}()
	wrongEmail := func() error {
		_, err := accounts.Authenticate("nobody@example.com", "long-enough-password")
		return err
	}()
	if !errors.Is(wrongPassword, ErrForbidden) || !errors.Is(wrongEmail, ErrForbidden) {
		t.Errorf("bad credentials = %v / %v, want ErrForbidden for both", wrongPassword, wrongEmail)
	}
}

func TestRosterDuplicateEntryConflicts(t *testing.T) {
	db := openTestDB(t)
	roster := NewRosterService(db, NewAuthzService(db, alwaysEntitled{}))
	s := makeStructure(t, db)
	coach := makeCoach(t, db, "coach@example.com", s.Team.ID)

	player := &models.Player{FirstName: "Nina", JerseyNumber: "5"}
	if err := db.Create(player).Error; err != nil {
		t.Fatal(err)
	}

	if err := roster.AddPlayer(coach, s.Team.ID, s.Season.ID, player.ID); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	// Same player, team, season: refused.
	if err := roster.AddPlayer(coach, s.Team.ID, s.Season.ID, player.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate AddPlayer = %v, want ErrConflict", err)
	}

	// A different season is a different roster.
	other := models.Season{Name: "2026-2027", LeagueID: s.League.ID}
	if err := db.Create(&other).Error; err != nil {
		t.Fatal(err)
	}
	if err := roster.AddPlayer(coach, s.Team.ID, other.ID, player.ID); err != nil {
		t.Fatalf("AddPlayer other season: %v", err)
	}
}

func TestRosterRemoveAndAuthz(t *testing.T) {
	db := openTestDB(t)
	roster := NewRosterService(db, NewAuthzService(db, alwaysEntitled{}))
	s := makeStructure(t, db)
	coach := makeCoach(t, db, "coach@example.com", s.Team.ID)
	rivalCoach := makeCoach(t, db, "rival@example.com", s.Rival.ID)
	player := makeRosteredPlayer(t, db, s, "Tess", "8", nil)

	if err := roster.RemovePlayer(rivalCoach, s.Team.ID, s.Season.ID, player.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("rival coach remove = %v, want ErrForbidden", err)
	}
	if err := roster.RemovePlayer(coach, s.Team.ID, s.Season.ID, player.ID); err != nil {
		t.Fatalf("RemovePlayer: %v", err)
	}
	if err := roster.RemovePlayer(coach, s.Team.ID, s.Season.ID, player.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second remove = %v, want ErrNotFound", err)
	}
}

func TestCreatePlayerPlaceholder(t *testing.T) {
	db := openTestDB(t)
	roster := NewRosterService(db, NewAuthzService(db, alwaysEntitled{}))
	s := makeStructure(t, db)
	coach := makeCoach(t, db, "coach@example.com", s.Team.ID)

	player, err := roster.CreatePlayer(coach, s.Team.ID, s.Season.ID, PlayerInput{
		FirstName:    "Freja",
		LastName:     "Holm",
		JerseyNumber: "17",
		Position:     "Centre",
	})
	if err != nil {
		t.Fatalf("CreatePlayer: %v", err)
	}
	if player.UserID != nil {
		t.Error("placeholder should have no linked user")
	}
	var entries int64
	db.Model(&models.RosterEntry{}).Where("player_id = ?", player.ID).Count(&entries)
	if entries != 1 {
		t.Errorf("roster entries = %d, want 1", entries)
	}
}
