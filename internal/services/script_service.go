package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/scriptgo/backend/internal/dto"
	"github.com/scriptgo/backend/internal/models"
	"github.com/scriptgo/backend/internal/owner"
	"github.com/scriptgo/backend/internal/plan"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrScriptNotFound = errors.New("script not found")
	ErrEmptyBundle    = errors.New("bundle must contain at least one script")
)

// ScriptService is the persistence layer for scripts and bundles. Every
// operation is filtered by the owning user; a row belonging to someone else
// behaves exactly like a missing row.
type ScriptService struct {
	db *gorm.DB
}

func NewScriptService(db *gorm.DB) *ScriptService {
	return &ScriptService{db: db}
}

func (s *ScriptService) Create(userID uuid.UUID, req *dto.SaveScriptRequest) (*models.Script, error) {
	script := &models.Script{
		UserID:       userID,
		Title:        req.Title,
		Platform:     req.Platform,
		Tone:         req.Tone,
		Language:     req.Language,
		Length:       req.Length,
		CustomLength: req.CustomLength,
		Content:      datatypes.JSON(req.Content),
	}
	if script.Title == "" {
		script.Title = "Untitled Script"
	}
	if req.ScheduledDate != "" {
		d, err := plan.ParseDate(req.ScheduledDate)
		if err != nil {
			return nil, fmt.Errorf("invalid scheduled_date: %w", err)
		}
		script.ScheduledDate = &d
	}

	if err := s.db.Create(script).Error; err != nil {
		return nil, err
	}
	return script, nil
}

func (s *ScriptService) Update(userID, scriptID uuid.UUID, req *dto.SaveScriptRequest) (*models.Script, error) {
	script, err := s.Get(userID, scriptID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":         req.Title,
		"platform":      req.Platform,
		"tone":          req.Tone,
		"language":      req.Language,
		"length":        req.Length,
		"custom_length": req.CustomLength,
		"updated_at":    time.Now(),
	}
	if len(req.Content) > 0 {
		updates["content"] = datatypes.JSON(req.Content)
	}
	if req.ScheduledDate != "" {
		d, err := plan.ParseDate(req.ScheduledDate)
		if err != nil {
			return nil, fmt.Errorf("invalid scheduled_date: %w", err)
		}
		updates["scheduled_date"] = &d
	}

	if err := s.db.Model(script).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(userID, scriptID)
}

func (s *ScriptService) List(userID uuid.UUID, limit, offset int) ([]models.Script, int64, error) {
	var scripts []models.Script
	var total int64

	s.db.Model(&models.Script{}).Scopes(owner.Scope(userID)).Count(&total)

	if err := s.db.Scopes(owner.Scope(userID)).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&scripts).Error; err != nil {
		return nil, 0, err
	}

	return scripts, total, nil
}

func (s *ScriptService) Get(userID, scriptID uuid.UUID) (*models.Script, error) {
	var script models.Script
	if err := s.db.Scopes(owner.Scope(userID)).First(&script, "id = ?", scriptID).Error; err != nil {
		return nil, ErrScriptNotFound
	}
	return &script, nil
}

func (s *ScriptService) Delete(userID, scriptID uuid.UUID) error {
	result := s.db.Scopes(owner.Scope(userID)).Delete(&models.Script{}, "id = ?", scriptID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrScriptNotFound
	}
	return nil
}

func (s *ScriptService) ToggleStar(userID, scriptID uuid.UUID) (*models.Script, error) {
	script, err := s.Get(userID, scriptID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(script).Update("starred", !script.Starred).Error; err != nil {
		return nil, err
	}
	script.Starred = !script.Starred
	return script, nil
}

// SaveBundle persists a whole multi-day plan as one row. Single-row writes
// keep bundle saves free of multi-row consistency concerns.
func (s *ScriptService) SaveBundle(userID uuid.UUID, topic string, scripts []dto.CalendarScript) (*models.Script, error) {
	if len(scripts) == 0 {
		return nil, ErrEmptyBundle
	}
	if topic == "" {
		topic = "Untitled Plan"
	}

	bundle := models.BundleContent{
		IsBundle:         true,
		Scripts:          make([]models.BundleScript, 0, len(scripts)),
		CompletedThrough: 0,
	}
	for i, sc := range scripts {
		day := sc.Day
		if day == 0 {
			day = i + 1
		}
		bundle.Scripts = append(bundle.Scripts, models.BundleScript{
			Day:     day,
			Title:   sc.Title,
			Content: sc.Content,
		})
	}

	raw, err := json.Marshal(bundle)
	if err != nil {
		return nil, err
	}

	script := &models.Script{
		UserID:   userID,
		Title:    fmt.Sprintf("%d-Day Plan: %s", len(scripts), topic),
		Platform: scripts[0].Platform,
		Tone:     scripts[0].Tone,
		Language: scripts[0].Language,
		Length:   fmt.Sprintf("%d Days", len(scripts)),
		Content:  datatypes.JSON(raw),
	}
	if script.Platform == "" {
		script.Platform = "Multiple"
	}
	if script.Tone == "" {
		script.Tone = "Mixed"
	}
	if scripts[0].ScheduledDate != "" {
		if d, err := plan.ParseDate(scripts[0].ScheduledDate); err == nil {
			script.ScheduledDate = &d
		}
	}

	if err := s.db.Create(script).Error; err != nil {
		return nil, err
	}
	return script, nil
}

// MarkDayComplete advances the bundle's completion cursor by one, clamped to
// the number of days. Last write wins; there is no concurrency guard.
func (s *ScriptService) MarkDayComplete(userID, scriptID uuid.UUID) (*models.BundleContent, error) {
	return s.adjustCompletion(userID, scriptID, +1)
}

// UndoDayComplete steps the cursor back by one. A cursor at zero stays at
// zero; undo never goes negative.
func (s *ScriptService) UndoDayComplete(userID, scriptID uuid.UUID) (*models.BundleContent, error) {
	return s.adjustCompletion(userID, scriptID, -1)
}

func (s *ScriptService) adjustCompletion(userID, scriptID uuid.UUID, delta int) (*models.BundleContent, error) {
	script, err := s.Get(userID, scriptID)
	if err != nil {
		return nil, err
	}

	bundle, err := script.Bundle()
	if err != nil {
		return nil, err
	}

	next := bundle.CompletedThrough + delta
	if next < 0 {
		next = 0
	}
	if next > len(bundle.Scripts) {
		next = len(bundle.Scripts)
	}
	if next == bundle.CompletedThrough {
		return bundle, nil
	}
	bundle.CompletedThrough = next

	if err := script.SetBundle(bundle); err != nil {
		return nil, err
	}
	if err := s.db.Model(script).Update("content", script.Content).Error; err != nil {
		return nil, err
	}
	return bundle, nil
}

// CalendarView renders a bundle as day cards with derived dates. The base
// date is the stored scheduled_date when present, otherwise the row's
// creation date, and per-day dates come from the same helper the generation
// pipeline uses.
func (s *ScriptService) CalendarView(userID, scriptID uuid.UUID) (*dto.BundleCalendarResponse, error) {
	script, err := s.Get(userID, scriptID)
	if err != nil {
		return nil, err
	}

	bundle, err := script.Bundle()
	if err != nil {
		return nil, err
	}

	base := script.CreatedAt
	if script.ScheduledDate != nil {
		base = *script.ScheduledDate
	}

	days := make([]dto.CalendarDay, 0, len(bundle.Scripts))
	for _, bs := range bundle.Scripts {
		status := "pending"
		switch {
		case bs.Day <= bundle.CompletedThrough:
			status = "completed"
		case bs.Day == bundle.CompletedThrough+1:
			status = "active"
		}
		days = append(days, dto.CalendarDay{
			Day:           bs.Day,
			Title:         bs.Title,
			Content:       bs.Content,
			ScheduledDate: plan.DateForDay(base, bs.Day),
			Status:        status,
		})
	}

	return &dto.BundleCalendarResponse{
		ScriptID:         script.ID.String(),
		Title:            script.Title,
		Days:             days,
		CompletedThrough: bundle.CompletedThrough,
	}, nil
}
