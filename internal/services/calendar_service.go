package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scriptgo/backend/internal/dto"
	"github.com/scriptgo/backend/internal/llm"
	"github.com/scriptgo/backend/internal/plan"
)

const maxCalendarDays = 30

// CalendarService runs the content-plan pipeline: one outline request, a
// reconcile pass, then one script request per day issued sequentially with a
// small delay between calls. A failed day gets templated fallback content so
// the calendar never has holes; an unparseable outline fails the whole
// request.
type CalendarService struct {
	client   llm.Client
	scripts  *ScriptService
	profiles *ProfileService
	delay    time.Duration
	now      func() time.Time
}

func NewCalendarService(client llm.Client, scripts *ScriptService, profiles *ProfileService, delay time.Duration) *CalendarService {
	return &CalendarService{
		client:   client,
		scripts:  scripts,
		profiles: profiles,
		delay:    delay,
		now:      time.Now,
	}
}

func buildPlanPrompt(platform, topic, tone, language string, days int) string {
	return fmt.Sprintf(`You are a content strategist for %s. Your task is to generate a content plan for EXACTLY %d consecutive days.

CRITICAL REQUIREMENT: You MUST generate EXACTLY %d items in the plan array. No more, no less.

Main Topic: %s
Tone: %s
Language: %s

Return a valid JSON object with a "plan" array containing EXACTLY %d items.
Each item in the array MUST have:
- "day": The day number (1, 2, 3, ... up to %d)
- "title": A catchy title for the content that day.
- "brief": A short brief or specific angle for that day's content.

VERIFICATION: Before returning, count the items in your plan array. It MUST equal %d.

Ensure the content is diverse but stays on the main topic.
Output ONLY valid JSON.`, platform, days, days, topic, tone, language, days, days, days)
}

func buildDayPrompt(platform, tone, language string, days int, item plan.Item) string {
	return fmt.Sprintf(`You are a world-class script writer for %s.
Generate a script for Day %d of a %d-day challenge.
Title: %s
Brief: %s
Tone: %s
Language: %s

Returns valid JSON with this structure:
{
  "hook": "The hook strategy and text here...",
  "sections": [
    { "visual": "Visual description...", "audio": "Audio direction/dialogue..." },
    ...
  ]
}

The entire script content MUST be in %s.
Keep the script length to approximately 60 seconds.

CRITICAL LANGUAGE REQUIREMENT:
- If %s is English, use English.
- If %s is NOT English, use native script but keep technical words in English.
- High energy, conversational tone.

Output ONLY valid JSON.`, platform, item.Day, days, item.Title, item.Brief, tone, language, language, language, language)
}

// fallbackContent substitutes a fixed templated script when a day's
// generation or parsing fails, so the calendar card is never empty.
func fallbackContent(item plan.Item) json.RawMessage {
	fallback := map[string]interface{}{
		"hook": fmt.Sprintf("Welcome to Day %d! Today we're diving into %s.", item.Day, item.Title),
		"sections": []map[string]string{
			{"visual": "Creator on camera", "audio": fmt.Sprintf("Hey everyone! Today is day %d and we're talking about %s.", item.Day, item.Title)},
			{"visual": "Dynamic transitions", "audio": item.Brief},
			{"visual": "Call to action", "audio": "Don't forget to follow for the rest of the challenge!"},
		},
	}
	raw, _ := json.Marshal(fallback)
	return raw
}

func (s *CalendarService) GenerateCalendar(ctx context.Context, userID uuid.UUID, req *dto.GenerateCalendarRequest) (*dto.GenerateCalendarResponse, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, fmt.Errorf("topic is required")
	}
	days := req.Days
	if days < 1 {
		days = 1
	}
	if days > maxCalendarDays {
		days = maxCalendarDays
	}

	// The whole calendar counts as a single generation against the allowance.
	if err := s.profiles.ConsumeGeneration(userID); err != nil {
		return nil, err
	}

	// Step 1: the plan outline. An unparseable outline is fatal.
	raw, err := s.client.Complete(ctx, "", buildPlanPrompt(req.Platform, req.Topic, req.Tone, req.Language, days))
	if err != nil {
		return nil, err
	}

	var outline plan.Outline
	if err := llm.DecodeJSON(raw, &outline); err != nil {
		return nil, fmt.Errorf("failed to parse content plan: %w", err)
	}

	items := plan.Reconcile(outline.Plan, days, req.Topic)
	if len(items) != len(outline.Plan) {
		slog.Warn("plan outline adjusted to requested length",
			"generated", len(outline.Plan), "requested", days)
	}

	// Step 2: one script per day, strictly sequential with a pacing delay.
	base := s.now()
	results := make([]dto.CalendarScript, 0, len(items))

	for i, item := range items {
		content := s.generateDay(ctx, req, days, item)
		dateStr := plan.DateForDay(base, item.Day)

		entry := dto.CalendarScript{
			Day:           item.Day,
			Title:         item.Title,
			Platform:      req.Platform,
			Tone:          req.Tone,
			Language:      req.Language,
			Content:       content,
			ScheduledDate: dateStr,
		}

		if !req.SkipSave {
			script, err := s.scripts.Create(userID, &dto.SaveScriptRequest{
				Title:         item.Title,
				Platform:      req.Platform,
				Tone:          req.Tone,
				Language:      req.Language,
				Length:        "60s",
				Content:       content,
				ScheduledDate: dateStr,
			})
			if err != nil {
				slog.Error("failed to save calendar script", "day", item.Day, "error", err)
			} else {
				entry.ID = script.ID.String()
			}
		}

		results = append(results, entry)

		if i < len(items)-1 && s.delay > 0 {
			time.Sleep(s.delay)
		}
	}

	return &dto.GenerateCalendarResponse{Scripts: results}, nil
}

func (s *CalendarService) generateDay(ctx context.Context, req *dto.GenerateCalendarRequest, days int, item plan.Item) json.RawMessage {
	raw, err := s.client.Complete(ctx, "", buildDayPrompt(req.Platform, req.Tone, req.Language, days, item))
	if err != nil {
		slog.Warn("day generation failed, using fallback content", "day", item.Day, "error", err)
		return fallbackContent(item)
	}

	content, err := llm.ExtractJSON(raw)
	if err != nil {
		slog.Warn("day output unparseable, using fallback content", "day", item.Day, "error", err)
		return fallbackContent(item)
	}
	return content
}
