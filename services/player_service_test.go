// services/player_service_test.go
package services

import (
	"errors"
	"testing"
	"time"

	"github.com/reedse/ringette-leagues2/models"
)

func TestSeasonStatsSums(t *testing.T) {
	db := openTestDB(t)
	svc := NewPlayerService(db, NewAuthzService(db, alwaysEntitled{}))
	s := makeStructure(t, db)

	user := makeUser(t, db, "Pia Player", "pia@example.com", models.RolePlayer)
	player := makeRosteredPlayer(t, db, s, "Pia", "3", &user.ID)
	user.Player = player

	g1 := makeGame(t, db, s, "")
	g2 := makeGame(t, db, s, "")
	for _, line := range []models.PlayerGameStat{
		{GameID: g1.ID, PlayerID: player.ID, TeamID: s.Team.ID, Goals: 2, Assists: 1, ShotsOnGoal: 6},
		{GameID: g2.ID, PlayerID: player.ID, TeamID: s.Team.ID, Goals: 0, Assists: 3, ShotsOnGoal: 2},
	} {
		if err := db.Create(&line).Error; err != nil {
			t.Fatal(err)
		}
	}

	summary, err := svc.SeasonStats(user, s.Season.ID)
	if err != nil {
		t.Fatalf("SeasonStats: %v", err)
	}
	if summary.GamesPlayed != 2 || summary.Goals != 2 || summary.Assists != 4 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Points != 6 {
		t.Errorf("points = %d, want goals+assists = 6", summary.Points)
	}

	// A different season has no lines.
	other := models.Season{Name: "2026-2027", LeagueID: s.League.ID}
	if err := db.Create(&other).Error; err != nil {
		t.Fatal(err)
	}
	summary, err = svc.SeasonStats(user, other.ID)
	if err != nil {
		t.Fatal(err)
	}
	if summary.GamesPlayed != 0 || summary.Points != 0 {
		t.Errorf("other season summary = %+v", summary)
	}
}

func TestScheduleSplitsAroundNow(t *testing.T) {
	db := openTestDB(t)
	svc := NewPlayerService(db, NewAuthzService(db, alwaysEntitled{}))
	s := makeStructure(t, db)

	user := makeUser(t, db, "Pia Player", "pia@example.com", models.RolePlayer)
	player := makeRosteredPlayer(t, db, s, "Pia", "3", &user.ID)
	user.Player = player

	past := makeGame(t, db, s, "") // fixed date in early 2026 is in the past now
	future := &models.Game{
		SeasonID:     s.Season.ID,
		LeagueID:     s.League.ID,
		HomeTeamID:   s.Rival.ID,
		AwayTeamID:   s.Team.ID,
		GameDateTime: time.Now().Add(72 * time.Hour),
		Status:       models.GameStatusScheduled,
	}
	if err := db.Create(future).Error; err != nil {
		t.Fatal(err)
	}

	sched, err := svc.Schedule(user)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(sched.Upcoming) != 1 || sched.Upcoming[0].ID != future.ID {
		t.Errorf("upcoming = %v", sched.Upcoming)
	}
	if len(sched.Past) != 1 || sched.Past[0].ID != past.ID {
		t.Errorf("past = %v", sched.Past)
	}
}

func TestTeammatesRequiresMembership(t *testing.T) {
	db := openTestDB(t)
	svc := NewPlayerService(db, NewAuthzService(db, alwaysEntitled{}))
	s := makeStructure(t, db)

	member := makeUser(t, db, "Mia Member", "mia@example.com", models.RolePlayer)
	memberPlayer := makeRosteredPlayer(t, db, s, "Mia", "3", &member.ID)
	member.Player = memberPlayer
	makeRosteredPlayer(t, db, s, "Siri", "7", nil)

	outsider := makeUser(t, db, "Oda Outside", "oda@example.com", models.RolePlayer)
	outsiderPlayer := &models.Player{UserID: &outsider.ID, FirstName: "Oda", JerseyNumber: "99"}
	if err := db.Create(outsiderPlayer).Error; err != nil {
		t.Fatal(err)
	}
	outsider.Player = outsiderPlayer

	entries, err := svc.Teammates(member, s.Team.ID, s.Season.ID)
	if err != nil {
		t.Fatalf("Teammates: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("roster size = %d, want 2", len(entries))
	}

	if _, err := svc.Teammates(outsider, s.Team.ID, s.Season.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("outsider Teammates = %v, want ErrForbidden", err)
	}
}
