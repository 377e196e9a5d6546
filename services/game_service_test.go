// services/game_service_test.go
package services

import (
	"errors"
	"testing"
	"time"

	"github.com/reedse/ringette-leagues2/models"
)

func TestCreateGameHomeAndAway(t *testing.T) {
	db := openTestDB(t)
	svc := NewGameService(db, NewAuthzService(db, alwaysEntitled{}))
	s := makeStructure(t, db)
	coach := makeCoach(t, db, "coach@example.com", s.Team.ID)

	when := time.Date(2026, 2, 1, 18, 30, 0, 0, time.UTC)
	home, err := svc.CreateGame(coach, s.Team.ID, GameInput{
		SeasonID:       s.Season.ID,
		OpponentTeamID: s.Rival.ID,
		Home:           true,
		GameDateTime:   &when,
		Location:       "Rink 2",
	})
	if err != nil {
		t.Fatalf("CreateGame home: %v", err)
	}
	if home.HomeTeamID != s.Team.ID || home.AwayTeamID != s.Rival.ID {
		t.Errorf("home game teams = %d vs %d", home.HomeTeamID, home.AwayTeamID)
	}
	if home.Status != models.GameStatusScheduled {
		t.Errorf("status = %q", home.Status)
	}
	if home.LeagueID != s.League.ID {
		t.Errorf("league = %d, want the team's", home.LeagueID)
	}

	away, err := svc.CreateGame(coach, s.Team.ID, GameInput{
		SeasonID:       s.Season.ID,
		OpponentTeamID: s.Rival.ID,
		Home:           false,
		GameDateTime:   &when,
	})
	if err != nil {
		t.Fatalf("CreateGame away: %v", err)
	}
	if away.HomeTeamID != s.Rival.ID || away.AwayTeamID != s.Team.ID {
		t.Errorf("away game teams = %d vs %d", away.HomeTeamID, away.AwayTeamID)
	}

	// A team cannot play itself.
	_, err = svc.CreateGame(coach, s.Team.ID, GameInput{
		SeasonID:       s.Season.ID,
		OpponentTeamID: s.Team.ID,
		GameDateTime:   &when,
	})
	if !IsValidation(err) {
		t.Fatalf("self game = %v, want validation error", err)
	}
}

func TestUpdateGameStatusAndScores(t *testing.T) {
	db := openTestDB(t)
	svc := NewGameService(db, NewAuthzService(db, alwaysEntitled{}))
	s := makeStructure(t, db)
	coach := makeCoach(t, db, "coach@example.com", s.Team.ID)
	game := makeGame(t, db, s, "")

	bogus := "Cancelled By Weasels"
	if _, err := svc.UpdateGame(coach, game.ID, GameUpdate{Status: &bogus}); !IsValidation(err) {
		t.Fatalf("bogus status = %v, want validation error", err)
	}

	status := models.GameStatusCompleted
	homeScore, awayScore := 5, 3
	updated, err := svc.UpdateGame(coach, game.ID, GameUpdate{
		Status:    &status,
		HomeScore: &homeScore,
		AwayScore: &awayScore,
	})
	if err != nil {
		t.Fatalf("UpdateGame: %v", err)
	}
	if updated.Status != models.GameStatusCompleted || *updated.HomeScore != 5 || *updated.AwayScore != 3 {
		t.Errorf("updated game = %+v", updated)
	}

	rivalCoach := makeCoach(t, db, "rival@example.com", s.Rival.ID)
	if _, err := svc.UpdateGame(rivalCoach, game.ID, GameUpdate{Status: &status}); err != nil {
		t.Fatalf("away coach update: %v", err)
	}
}

func TestSaveStatsUpserts(t *testing.T) {
	db := openTestDB(t)
	svc := NewGameService(db, NewAuthzService(db, alwaysEntitled{}))
	s := makeStructure(t, db)
	coach := makeCoach(t, db, "coach@example.com", s.Team.ID)
	game := makeGame(t, db, s, "")
	player := makeRosteredPlayer(t, db, s, "Siri", "7", nil)

	lines := []StatLineInput{{
		PlayerID:    player.ID,
		TeamID:      s.Team.ID,
		Goals:       1,
		Assists:     2,
		ShotsOnGoal: 5,
	}}
	if err := svc.SaveStats(coach, game.ID, lines); err != nil {
		t.Fatalf("SaveStats: %v", err)
	}

	// Resubmitting overwrites the line instead of stacking a second row.
	lines[0].Goals = 2
	if err := svc.SaveStats(coach, game.ID, lines); err != nil {
		t.Fatalf("SaveStats again: %v", err)
	}
	var stats []models.PlayerGameStat
	if err := db.Where("game_id = ?", game.ID).Find(&stats).Error; err != nil {
		t.Fatal(err)
	}
	if len(stats) != 1 {
		t.Fatalf("stat rows = %d, want 1", len(stats))
	}
	if stats[0].Goals != 2 || stats[0].Assists != 2 {
		t.Errorf("stat line = %+v", stats[0])
	}

	// Stat lines for a team not in the game are rejected.
	third := models.Team{Name: "Frost", AssociationID: s.Assoc.ID, LeagueID: s.League.ID, SeasonID: s.Season.ID}
	if err := db.Create(&third).Error; err != nil {
		t.Fatal(err)
	}
	bad := []StatLineInput{{PlayerID: player.ID, TeamID: third.ID}}
	if err := svc.SaveStats(coach, game.ID, bad); !IsValidation(err) {
		t.Fatalf("uninvolved team = %v, want validation error", err)
	}
}

func TestSavePenaltiesReplacesSheet(t *testing.T) {
	db := openTestDB(t)
	svc := NewGameService(db, NewAuthzService(db, alwaysEntitled{}))
	s := makeStructure(t, db)
	coach := makeCoach(t, db, "coach@example.com", s.Team.ID)
	game := makeGame(t, db, s, "")
	player := makeRosteredPlayer(t, db, s, "Siri", "7", nil)

	var trip models.PenaltyCode
	if err := db.Where("code = ?", "TRIP").First(&trip).Error; err != nil {
		t.Fatal(err)
	}

	// The same player can take the same penalty twice in one game.
	entries := []PenaltyInput{
		{PlayerID: player.ID, TeamID: s.Team.ID, PenaltyCodeID: trip.ID, Period: 1, TimeOffClock: "12:30"},
		{PlayerID: player.ID, TeamID: s.Team.ID, PenaltyCodeID: trip.ID, Period: 3, TimeOffClock: "04:05"},
	}
	if err := svc.SavePenalties(coach, game.ID, entries); err != nil {
		t.Fatalf("SavePenalties: %v", err)
	}
	var stored []models.GamePenalty
	if err := db.Where("game_id = ?", game.ID).Order("period").Find(&stored).Error; err != nil {
		t.Fatal(err)
	}
	if len(stored) != 2 {
		t.Fatalf("penalty rows = %d, want 2", len(stored))
	}

	// Resubmit with one updated entry and the other omitted: the omitted
	// row goes away.
	entries[0].ID = stored[0].ID
	entries[0].Period = 2
	if err := svc.SavePenalties(coach, game.ID, entries[:1]); err != nil {
		t.Fatalf("SavePenalties replace: %v", err)
	}
	if err := db.Where("game_id = ?", game.ID).Find(&stored).Error; err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 || stored[0].Period != 2 {
		t.Errorf("after replace: %+v", stored)
	}

	// Clock format is mm:ss.
	bad := []PenaltyInput{{PlayerID: player.ID, TeamID: s.Team.ID, PenaltyCodeID: trip.ID, Period: 1, TimeOffClock: "12:75"}}
	if err := svc.SavePenalties(coach, game.ID, bad); !IsValidation(err) {
		t.Fatalf("bad clock = %v, want validation error", err)
	}
}

func TestGameVisibility(t *testing.T) {
	db := openTestDB(t)
	svc := NewGameService(db, NewAuthzService(db, alwaysEntitled{}))
	s := makeStructure(t, db)
	game := makeGame(t, db, s, "")

	rosteredUser := makeUser(t, db, "Pia Player", "pia@example.com", models.RolePlayer)
	rosteredPlayer := makeRosteredPlayer(t, db, s, "Pia", "3", &rosteredUser.ID)
	rosteredUser.Player = rosteredPlayer

	outsideUser := makeUser(t, db, "Oda Outside", "oda@example.com", models.RolePlayer)
	outsidePlayer := &models.Player{UserID: &outsideUser.ID, FirstName: "Oda", JerseyNumber: "99"}
	if err := db.Create(outsidePlayer).Error; err != nil {
		t.Fatal(err)
	}
	outsideUser.Player = outsidePlayer

	if _, err := svc.Game(rosteredUser, game.ID); err != nil {
		t.Fatalf("rostered player view: %v", err)
	}
	if _, err := svc.Game(outsideUser, game.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("outside player view = %v, want ErrForbidden", err)
	}
}
