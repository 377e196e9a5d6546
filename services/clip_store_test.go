// services/clip_store_test.go
package services

import (
	"errors"
	"testing"

	"github.com/reedse/ringette-leagues2/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openBareDB opens an in-memory database without migrating any models,
// so tests can lay out the clips table by hand.
func openBareDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestClipStoreCurrentSchema(t *testing.T) {
	db := openTestDB(t)
	store := NewClipStore(db)

	clip := &models.Clip{
		GameID:      1,
		CoachUserID: 2,
		VideoURL:    "https://video.example.com/g1",
		Title:       "Backcheck",
		Description: "Watch the gap control",
		StartTime:   12,
		EndTime:     40,
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		return store.Create(tx, clip)
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if clip.ID == 0 {
		t.Fatal("Create did not backfill the clip id")
	}

	got, err := store.Find(clip.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.Title != "Backcheck" || got.Description != "Watch the gap control" {
		t.Errorf("Find returned %q / %q", got.Title, got.Description)
	}
	if got.StartTime != 12 || got.EndTime != 40 {
		t.Errorf("Find returned times %d-%d, want 12-40", got.StartTime, got.EndTime)
	}

	clip.Title = "Backcheck v2"
	clip.EndTime = 45
	if err := store.Update(db, clip); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = store.Find(clip.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Backcheck v2" || got.EndTime != 45 {
		t.Errorf("after update got %q end=%d", got.Title, got.EndTime)
	}
}

func TestClipStoreLegacySchema(t *testing.T) {
	db := openBareDB(t)
	if err := db.Exec(`CREATE TABLE clips (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id INTEGER,
		coach_user_id INTEGER,
		video_url TEXT,
		clip_title TEXT,
		notes TEXT,
		start_time_seconds INTEGER,
		end_time_seconds INTEGER,
		created_at DATETIME,
		updated_at DATETIME
	)`).Error; err != nil {
		t.Fatalf("creating legacy table: %v", err)
	}
	store := NewClipStore(db)

	clip := &models.Clip{
		GameID:      3,
		CoachUserID: 4,
		Title:       "Legacy drill",
		Description: "Stored under old column names",
		StartTime:   5,
		EndTime:     20,
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		return store.Create(tx, clip)
	}); err != nil {
		t.Fatalf("Create against legacy layout: %v", err)
	}

	// The physical row must have the legacy columns populated.
	var stored struct {
		ClipTitle        string
		Notes            string
		StartTimeSeconds int
		EndTimeSeconds   int
	}
	err := db.Raw("SELECT clip_title, notes, start_time_seconds, end_time_seconds FROM clips WHERE id = ?", clip.ID).
		Scan(&stored).Error
	if err != nil {
		t.Fatal(err)
	}
	if stored.ClipTitle != "Legacy drill" || stored.Notes != "Stored under old column names" {
		t.Errorf("legacy columns hold %q / %q", stored.ClipTitle, stored.Notes)
	}
	if stored.StartTimeSeconds != 5 || stored.EndTimeSeconds != 20 {
		t.Errorf("legacy time columns hold %d-%d", stored.StartTimeSeconds, stored.EndTimeSeconds)
	}

	// Reads normalize back to the current field names.
	got, err := store.Find(clip.ID)
	if err != nil {
		t.Fatalf("Find against legacy layout: %v", err)
	}
	if got.Title != "Legacy drill" || got.Description != "Stored under old column names" {
		t.Errorf("Find returned %q / %q", got.Title, got.Description)
	}
	if got.StartTime != 5 || got.EndTime != 20 {
		t.Errorf("Find returned times %d-%d", got.StartTime, got.EndTime)
	}

	clip.Title = "Legacy drill revised"
	if err := store.Update(db, clip); err != nil {
		t.Fatalf("Update against legacy layout: %v", err)
	}
	got, err = store.Find(clip.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Legacy drill revised" {
		t.Errorf("after update got %q", got.Title)
	}
}

// The store's first schema lookup can happen inside an already-open
// transaction. With the pool capped at one connection, resolving the
// columns anywhere but on the transaction handle would block forever
// waiting for a second connection.
func TestClipStoreSnapshotInsideTransaction(t *testing.T) {
	db := openBareDB(t)
	if err := db.Exec(`CREATE TABLE clips (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id INTEGER,
		coach_user_id INTEGER,
		video_url TEXT,
		title TEXT,
		description TEXT,
		start_time INTEGER,
		end_time INTEGER,
		created_at DATETIME,
		updated_at DATETIME
	)`).Error; err != nil {
		t.Fatal(err)
	}
	store := NewClipStore(db)

	clip := &models.Clip{GameID: 1, CoachUserID: 2, Title: "First touch", EndTime: 8}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := store.Create(tx, clip); err != nil {
			return err
		}
		clip.Title = "First touch, annotated"
		return store.Update(tx, clip)
	})
	if err != nil {
		t.Fatalf("clip writes inside transaction: %v", err)
	}
	got, err := store.Find(clip.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "First touch, annotated" {
		t.Errorf("Find returned %q", got.Title)
	}
}

func TestClipStoreSchemaMismatch(t *testing.T) {
	db := openBareDB(t)
	// Neither title nor clip_title exists.
	if err := db.Exec(`CREATE TABLE clips (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id INTEGER,
		coach_user_id INTEGER,
		video_url TEXT,
		description TEXT,
		start_time INTEGER,
		end_time INTEGER,
		created_at DATETIME,
		updated_at DATETIME
	)`).Error; err != nil {
		t.Fatal(err)
	}
	store := NewClipStore(db)

	err := db.Transaction(func(tx *gorm.DB) error {
		return store.Create(tx, &models.Clip{Title: "nope", StartTime: 0, EndTime: 1})
	})
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("Create = %v, want ErrSchemaMismatch", err)
	}
}

func TestClipStoreFindMissing(t *testing.T) {
	db := openTestDB(t)
	store := NewClipStore(db)

	if _, err := store.Find(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Find missing = %v, want ErrNotFound", err)
	}
	if err := store.Update(db, &models.Clip{ID: 9999, Title: "x", EndTime: 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update missing = %v, want ErrNotFound", err)
	}
}
