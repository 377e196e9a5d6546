// services/clip_store.go - Clip persistence with legacy column support
//
// The clips table has existed under two column layouts: the current one
// (title, description, start_time, end_time) and a legacy one
// (clip_title, notes, start_time_seconds, end_time_seconds). Deployments
// migrated at different times, so the store inspects the live schema
// once per process and maps every read and write onto whichever columns
// are actually there. The rest of the app only ever sees the current
// names on models.Clip.
package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/reedse/ringette-leagues2/models"

	"gorm.io/gorm"
)

// clipField pairs a logical field with its current and legacy columns.
type clipField struct {
	current string
	legacy  string
}

var clipFields = []clipField{
	{current: "title", legacy: "clip_title"},
	{current: "description", legacy: "notes"},
	{current: "start_time", legacy: "start_time_seconds"},
	{current: "end_time", legacy: "end_time_seconds"},
}

// clipRow carries both column sets so a single struct can be written
// against either layout. Only the columns resolved against the live
// schema are ever selected.
type clipRow struct {
	ID               uint      `gorm:"primaryKey"`
	GameID           uint      `gorm:"column:game_id"`
	CoachUserID      uint      `gorm:"column:coach_user_id"`
	VideoURL         string    `gorm:"column:video_url"`
	Title            string    `gorm:"column:title"`
	ClipTitle        string    `gorm:"column:clip_title"`
	Description      string    `gorm:"column:description"`
	Notes            string    `gorm:"column:notes"`
	StartTime        int       `gorm:"column:start_time"`
	StartTimeSeconds int       `gorm:"column:start_time_seconds"`
	EndTime          int       `gorm:"column:end_time"`
	EndTimeSeconds   int       `gorm:"column:end_time_seconds"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (clipRow) TableName() string {
	return "clips"
}

type ClipStore struct {
	db *gorm.DB

	once    sync.Once
	columns map[string]bool
	colErr  error
}

func NewClipStore(db *gorm.DB) *ClipStore {
	return &ClipStore{db: db}
}

// snapshot loads the clips table's column set once per store lifetime.
// Callers pass the handle they are about to write with: resolving through
// the root pool from inside a transaction would need a second connection,
// which a constrained pool may never grant.
func (s *ClipStore) snapshot(db *gorm.DB) (map[string]bool, error) {
	s.once.Do(func() {
		types, err := db.Migrator().ColumnTypes(&clipRow{})
		if err != nil {
			s.colErr = fmt.Errorf("inspecting clips schema: %w", err)
			return
		}
		s.columns = make(map[string]bool, len(types))
		for _, t := range types {
			s.columns[t.Name()] = true
		}
	})
	return s.columns, s.colErr
}

// writeColumns resolves each logical field to the column the live schema
// actually has. A field with neither column present fails loudly rather
// than dropping the value.
func (s *ClipStore) writeColumns(tx *gorm.DB) ([]string, error) {
	cols, err := s.snapshot(tx)
	if err != nil {
		return nil, err
	}
	resolved := make([]string, 0, len(clipFields))
	for _, f := range clipFields {
		switch {
		case cols[f.current]:
			resolved = append(resolved, f.current)
		case cols[f.legacy]:
			resolved = append(resolved, f.legacy)
		default:
			return nil, fmt.Errorf("%w: clips table has neither %q nor %q",
				ErrSchemaMismatch, f.current, f.legacy)
		}
	}
	return resolved, nil
}

// readColumns is the intersection of clipRow's columns with the live
// schema, so selects never name a missing column.
func (s *ClipStore) readColumns() ([]string, error) {
	cols, err := s.snapshot(s.db)
	if err != nil {
		return nil, err
	}
	all := []string{"id", "game_id", "coach_user_id", "video_url", "created_at", "updated_at"}
	for _, f := range clipFields {
		all = append(all, f.current, f.legacy)
	}
	present := make([]string, 0, len(all))
	for _, c := range all {
		if cols[c] {
			present = append(present, c)
		}
	}
	return present, nil
}

// toRow spreads a Clip's current-name values across both column sets;
// the caller's select list decides which half is written.
func toRow(c *models.Clip) *clipRow {
	return &clipRow{
		ID:               c.ID,
		GameID:           c.GameID,
		CoachUserID:      c.CoachUserID,
		VideoURL:         c.VideoURL,
		Title:            c.Title,
		ClipTitle:        c.Title,
		Description:      c.Description,
		Notes:            c.Description,
		StartTime:        c.StartTime,
		StartTimeSeconds: c.StartTime,
		EndTime:          c.EndTime,
		EndTimeSeconds:   c.EndTime,
	}
}

// fromRow normalizes a stored row to current-name fields, falling back
// to the legacy value wherever the current one is empty.
func fromRow(r *clipRow) *models.Clip {
	c := &models.Clip{
		ID:          r.ID,
		GameID:      r.GameID,
		CoachUserID: r.CoachUserID,
		VideoURL:    r.VideoURL,
		Title:       r.Title,
		Description: r.Description,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if c.Title == "" {
		c.Title = r.ClipTitle
	}
	if c.Description == "" {
		c.Description = r.Notes
	}
	if c.StartTime == 0 && r.StartTimeSeconds != 0 {
		c.StartTime = r.StartTimeSeconds
	}
	if c.EndTime == 0 && r.EndTimeSeconds != 0 {
		c.EndTime = r.EndTimeSeconds
	}
	return c
}

// Create inserts a clip, writing each field to the resolved column.
// Runs inside the caller's transaction.
func (s *ClipStore) Create(tx *gorm.DB, c *models.Clip) error {
	writable, err := s.writeColumns(tx)
	if err != nil {
		return err
	}
	cols := append([]string{"game_id", "coach_user_id", "video_url", "created_at", "updated_at"}, writable...)
	row := toRow(c)
	if err := tx.Select(cols).Create(row).Error; err != nil {
		return err
	}
	c.ID = row.ID
	c.CreatedAt = row.CreatedAt
	c.UpdatedAt = row.UpdatedAt
	return nil
}

// Update rewrites the clip's editable fields under the resolved columns.
func (s *ClipStore) Update(tx *gorm.DB, c *models.Clip) error {
	writable, err := s.writeColumns(tx)
	if err != nil {
		return err
	}
	cols := append([]string{"updated_at"}, writable...)
	row := toRow(c)
	res := tx.Model(&clipRow{}).Where("id = ?", c.ID).Select(cols).Updates(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Find returns the clip with current-name fields populated, or
// ErrNotFound.
func (s *ClipStore) Find(id uint) (*models.Clip, error) {
	readable, err := s.readColumns()
	if err != nil {
		return nil, err
	}
	var row clipRow
	err = s.db.Select(readable).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromRow(&row), nil
}

// ListByCoach returns all clips a coach created, newest first.
func (s *ClipStore) ListByCoach(coachUserID uint) ([]models.Clip, error) {
	readable, err := s.readColumns()
	if err != nil {
		return nil, err
	}
	var rows []clipRow
	err = s.db.Select(readable).
		Where("coach_user_id = ?", coachUserID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	clips := make([]models.Clip, len(rows))
	for i := range rows {
		clips[i] = *fromRow(&rows[i])
	}
	return clips, nil
}

// ListSharedWithPlayer returns clips shared with the player, newest
// share first.
func (s *ClipStore) ListSharedWithPlayer(playerID uint) ([]models.Clip, error) {
	readable, err := s.readColumns()
	if err != nil {
		return nil, err
	}
	for i, c := range readable {
		readable[i] = "clips." + c
	}
	var rows []clipRow
	err = s.db.Select(readable).
		Joins("JOIN clip_player ON clip_player.clip_id = clips.id").
		Where("clip_player.player_id = ?", playerID).
		Order("clip_player.sent_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	clips := make([]models.Clip, len(rows))
	for i := range rows {
		clips[i] = *fromRow(&rows[i])
	}
	return clips, nil
}

// ListAll returns every clip, newest first.
func (s *ClipStore) ListAll() ([]models.Clip, error) {
	readable, err := s.readColumns()
	if err != nil {
		return nil, err
	}
	var rows []clipRow
	if err := s.db.Select(readable).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	clips := make([]models.Clip, len(rows))
	for i := range rows {
		clips[i] = *fromRow(&rows[i])
	}
	return clips, nil
}

// CountByCoach counts clips created by the coach.
func (s *ClipStore) CountByCoach(coachUserID uint) (int64, error) {
	var count int64
	err := s.db.Model(&clipRow{}).Where("coach_user_id = ?", coachUserID).Count(&count).Error
	return count, err
}

// Delete removes the clip row. Shares cascade at the storage layer; the
// service deletes them explicitly as well for stores without foreign key
// enforcement.
func (s *ClipStore) Delete(tx *gorm.DB, id uint) error {
	return tx.Where("id = ?", id).Delete(&clipRow{}).Error
}
