// services/clip_service.go - Clip creation, sharing and visibility
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/reedse/ringette-leagues2/models"
	"github.com/reedse/ringette-leagues2/notifications"

	"gorm.io/gorm"
)

// ErrAllSharesFailed marks a create or update where every player share
// insert failed.
var ErrAllSharesFailed = errors.New("failed to share clip with any player")

// SharePlayer selects one recipient for a clip, with an optional note.
type SharePlayer struct {
	PlayerID uint   `json:"id"`
	Note     string `json:"note"`
}

// ClipInput carries the fields a coach submits for a clip.
type ClipInput struct {
	GameID      uint          `json:"game_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	StartTime   int           `json:"start_time"`
	EndTime     int           `json:"end_time"`
	Players     []SharePlayer `json:"players"`
}

type ClipService struct {
	db       *gorm.DB
	store    *ClipStore
	authz    *AuthzService
	notifier notifications.Notifier
}

func NewClipService(db *gorm.DB, store *ClipStore, authz *AuthzService, notifier notifications.Notifier) *ClipService {
	return &ClipService{db: db, store: store, authz: authz, notifier: notifier}
}

// validate checks the input fields shared by create and update.
func (s *ClipService) validate(in *ClipInput) error {
	fields := map[string]string{}
	if in.Title == "" {
		fields["title"] = "title is required"
	}
	if in.StartTime < 0 {
		fields["start_time"] = "start time must be zero or greater"
	}
	if in.EndTime <= in.StartTime {
		fields["end_time"] = "end time must be after start time"
	}
	if len(in.Players) == 0 {
		fields["players"] = "select at least one player"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	ids := make([]uint, len(in.Players))
	for i, p := range in.Players {
		ids[i] = p.PlayerID
	}
	var count int64
	if err := s.db.Model(&models.Player{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return NewValidationError("players", "one or more selected players do not exist")
	}
	return nil
}

// gameForClip loads the game scoped to the actor: admins reach any game,
// coaches only games their managed team plays in.
func (s *ClipService) gameForClip(actor *models.User, gameID uint) (*models.Game, error) {
	q := s.db.Where("id = ?", gameID)
	if !actor.IsLeagueAdmin() {
		if !actor.IsCoach() || actor.ManagedTeamID == nil {
			return nil, ErrForbidden
		}
		teamID := *actor.ManagedTeamID
		q = q.Where("home_team_id = ? OR away_team_id = ?", teamID, teamID)
	}
	var game models.Game
	if err := q.First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &game, nil
}

// CreateClip creates a clip and shares it with the selected players.
// Per-player share failures are collected independently; if every share
// fails the clip is rolled back and the whole operation errors. A
// partial result returns the clip plus a PartialError enumerating the
// failed players.
func (s *ClipService) CreateClip(actor *models.User, in ClipInput) (*models.Clip, *PartialError, error) {
	if err := s.validate(&in); err != nil {
		return nil, nil, err
	}

	game, err := s.gameForClip(actor, in.GameID)
	if err != nil {
		return nil, nil, err
	}
	if game.VideoURL == "" {
		return nil, nil, NewValidationError("video_url", "game does not have a video; add one before creating clips")
	}

	clip := &models.Clip{
		GameID:      game.ID,
		CoachUserID: actor.ID,
		Title:       in.Title,
		Description: in.Description,
		VideoURL:    game.VideoURL,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
	}
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.store.Create(tx, clip)
	}); err != nil {
		return nil, nil, err
	}

	shared, failures := s.createShares(clip.ID, in.Players)

	if len(shared) == 0 {
		// Total failure: take the clip back out so nothing orphaned
		// remains.
		if err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("clip_id = ?", clip.ID).Delete(&models.ClipShare{}).Error; err != nil {
				return err
			}
			return s.store.Delete(tx, clip.ID)
		}); err != nil {
			log.Printf("failed to roll back clip %d after share failure: %v", clip.ID, err)
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrAllSharesFailed, &PartialError{Items: failures})
	}

	s.notifyShared(clip, actor, shared)

	if len(failures) > 0 {
		return clip, &PartialError{Items: failures}, nil
	}
	return clip, nil, nil
}

// createShares inserts one ClipShare per selected player, committing
// each independently. Returns the player ids that succeeded and a map
// of failures.
func (s *ClipService) createShares(clipID uint, players []SharePlayer) ([]uint, map[uint]string) {
	now := time.Now()
	shared := make([]uint, 0, len(players))
	failures := make(map[uint]string)
	for _, p := range players {
		share := &models.ClipShare{
			ClipID:    clipID,
			PlayerID:  p.PlayerID,
			CoachNote: p.Note,
			SentAt:    &now,
		}
		if err := s.db.Create(share).Error; err != nil {
			log.Printf("sharing clip %d with player %d failed: %v", clipID, p.PlayerID, err)
			failures[p.PlayerID] = err.Error()
			continue
		}
		shared = append(shared, p.PlayerID)
	}
	return shared, failures
}

// notifyShared emits a clip-shared event for each successfully shared
// player with a linked user. Fire and forget.
func (s *ClipService) notifyShared(clip *models.Clip, sender *models.User, playerIDs []uint) {
	if len(playerIDs) == 0 {
		return
	}
	var players []models.Player
	if err := s.db.Where("id IN ? AND user_id IS NOT NULL", playerIDs).Find(&players).Error; err != nil {
		log.Printf("loading linked users for clip %d notifications: %v", clip.ID, err)
		return
	}
	for _, p := range players {
		s.notifier.ClipShared(notifications.ClipSharedEvent{
			ClipID:      clip.ID,
			ClipTitle:   clip.Title,
			GameID:      clip.GameID,
			SenderID:    sender.ID,
			SenderName:  sender.Name,
			RecipientID: *p.UserID,
		})
	}
}

// UpdateClip rewrites the clip's fields and replaces its share set with
// the submitted one. Only players not shared with before the update are
// notified. Unlike create, a fully failed share pass does not undo the
// clip update; the error reports what failed.
func (s *ClipService) UpdateClip(actor *models.User, clipID uint, in ClipInput) (*models.Clip, *PartialError, error) {
	clip, err := s.store.Find(clipID)
	if err != nil {
		return nil, nil, err
	}
	if !s.authz.CanManageClip(actor, clip) {
		return nil, nil, ErrForbidden
	}
	if err := s.validate(&in); err != nil {
		return nil, nil, err
	}

	// Capture the before-set so notifications only go to new players.
	var beforeIDs []uint
	if err := s.db.Model(&models.ClipShare{}).
		Where("clip_id = ?", clip.ID).
		Pluck("player_id", &beforeIDs).Error; err != nil {
		return nil, nil, err
	}
	before := make(map[uint]bool, len(beforeIDs))
	for _, id := range beforeIDs {
		before[id] = true
	}

	clip.Title = in.Title
	clip.Description = in.Description
	clip.StartTime = in.StartTime
	clip.EndTime = in.EndTime
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.store.Update(tx, clip); err != nil {
			return err
		}
		// Replace, not diff: drop every existing share and recreate.
		return tx.Where("clip_id = ?", clip.ID).Delete(&models.ClipShare{}).Error
	}); err != nil {
		return nil, nil, err
	}

	shared, failures := s.createShares(clip.ID, in.Players)

	newlyShared := make([]uint, 0, len(shared))
	for _, id := range shared {
		if !before[id] {
			newlyShared = append(newlyShared, id)
		}
	}
	s.notifyShared(clip, actor, newlyShared)

	if len(shared) == 0 && len(in.Players) > 0 {
		return clip, nil, fmt.Errorf("%w: %v", ErrAllSharesFailed, &PartialError{Items: failures})
	}
	if len(failures) > 0 {
		return clip, &PartialError{Items: failures}, nil
	}
	return clip, nil, nil
}

// DeleteClip removes a clip and its shares.
func (s *ClipService) DeleteClip(actor *models.User, clipID uint) error {
	clip, err := s.store.Find(clipID)
	if err != nil {
		return err
	}
	if !s.authz.CanManageClip(actor, clip) {
		return ErrForbidden
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("clip_id = ?", clip.ID).Delete(&models.ClipShare{}).Error; err != nil {
			return err
		}
		return s.store.Delete(tx, clip.ID)
	})
}

// GetClip returns a clip the actor may view. For players the response
// is identical whether the clip is missing, unshared, or ungated:
// ErrForbidden, so existence never leaks.
func (s *ClipService) GetClip(actor *models.User, clipID uint) (*models.Clip, error) {
	adminOrCoach := actor.IsLeagueAdmin() || actor.IsCoach()
	clip, err := s.store.Find(clipID)
	if err != nil {
		if errors.Is(err, ErrNotFound) && !adminOrCoach {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if !s.authz.CanViewClip(actor, clip) {
		return nil, ErrForbidden
	}
	// Older rows may predate per-clip video urls; fall back to the game's.
	if clip.VideoURL == "" {
		var game models.Game
		if err := s.db.First(&game, clip.GameID).Error; err == nil {
			clip.VideoURL = game.VideoURL
		}
	}
	return clip, nil
}

// ListClips returns the clips visible to the actor: everything for
// admins, own clips for coaches, entitled shared clips for players.
func (s *ClipService) ListClips(actor *models.User) ([]models.Clip, error) {
	if !s.authz.CanListClips(actor) {
		return nil, ErrForbidden
	}
	switch {
	case actor.IsLeagueAdmin():
		return s.store.ListAll()
	case actor.IsCoach():
		return s.store.ListByCoach(actor.ID)
	default:
		if actor.Player == nil {
			return []models.Clip{}, nil
		}
		return s.store.ListSharedWithPlayer(actor.Player.ID)
	}
}

// SharesForClip lists the share rows for a clip the actor can manage.
func (s *ClipService) SharesForClip(actor *models.User, clipID uint) ([]models.ClipShare, error) {
	clip, err := s.store.Find(clipID)
	if err != nil {
		return nil, err
	}
	if !s.authz.CanManageClip(actor, clip) {
		return nil, ErrForbidden
	}
	var shares []models.ClipShare
	err = s.db.Where("clip_id = ?", clipID).Preload("Player").Find(&shares).Error
	return shares, err
}
