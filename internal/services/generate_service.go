package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/scriptgo/backend/internal/dto"
	"github.com/scriptgo/backend/internal/llm"
)

// GenerateService produces single scripts: prompt building, one model call,
// lenient JSON extraction, and optional persistence.
type GenerateService struct {
	client   llm.Client
	scripts  *ScriptService
	profiles *ProfileService
	emails   *EmailService
}

func NewGenerateService(client llm.Client, scripts *ScriptService, profiles *ProfileService, emails *EmailService) *GenerateService {
	return &GenerateService{
		client:   client,
		scripts:  scripts,
		profiles: profiles,
		emails:   emails,
	}
}

const scriptSystemPrompt = "You are an expert script writer. Always respond with valid JSON only, no markdown formatting."

// shapeFor returns the JSON structure directive for a platform. The content
// payload shape varies by platform and the UI renders each differently.
func shapeFor(platform string) string {
	switch strings.ToLower(platform) {
	case "instagram":
		return `{
  "caption": "The post caption here...",
  "hashtags": ["#tag1", "#tag2", ...],
  "scenes": [
    { "visual": "Visual description...", "overlay": "On-screen text...", "duration": "5s" },
    ...
  ]
}`
	case "linkedin":
		return `{
  "body": "The full post body here...",
  "keyPoints": ["First takeaway...", "Second takeaway...", ...],
  "cta": "The closing call to action..."
}`
	case "twitter":
		return `{
  "tweets": ["First tweet of the thread...", "Second tweet...", ...]
}`
	default: // YouTube and video-first platforms
		return `{
  "hook": "The hook text here...",
  "sections": [
    { "visual": "Visual description...", "audio": "Audio direction/dialogue..." },
    ...
  ]
}`
	}
}

// BuildScriptPrompt assembles the instruction string for one script. Pure
// string templating; garbage in produces garbage prompts.
func BuildScriptPrompt(platform, topic, tone, length, language string) string {
	return fmt.Sprintf(`You are an expert script writer. Your task is to generate a script in a strict JSON format.

Returns valid JSON with this structure:
%s

Input Parameters:
- Platform: %s
- Topic: %s
- Tone: %s
- Length: %s
- Language: %s

Guidelines for Visual/Audio split:
- Visual (See): Describe exactly what is on screen (e.g., "Close up shot of...", "Text overlay saying...", "Rapid montage of...").
- Audio (Hear): Write the actual spoken script, voiceover, or sound design notes.

Make the content engaging, high-retention, and tailored to the platform.
ENSURE THE OUTPUT IS PURE VALID JSON ONLY. NO MARKDOWN BLOCK.`,
		shapeFor(platform), platform, topic, tone, length, language)
}

func (s *GenerateService) GenerateScript(ctx context.Context, userID uuid.UUID, email string, req *dto.GenerateScriptRequest) (*dto.GenerateScriptResponse, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, fmt.Errorf("topic is required")
	}

	if err := s.profiles.ConsumeGeneration(userID); err != nil {
		return nil, err
	}

	prompt := BuildScriptPrompt(req.Platform, req.Topic, req.Tone, req.Length, req.Language)

	raw, err := s.client.Complete(ctx, scriptSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	content, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("model returned unparseable output: %w", err)
	}

	content = patchShape(req.Platform, content)

	resp := &dto.GenerateScriptResponse{Content: content}

	if req.Save {
		script, err := s.scripts.Create(userID, &dto.SaveScriptRequest{
			Title:    req.Topic,
			Platform: req.Platform,
			Tone:     req.Tone,
			Language: req.Language,
			Length:   req.Length,
			Content:  content,
		})
		if err != nil {
			return nil, err
		}
		resp.ScriptID = script.ID.String()

		if email != "" {
			go s.emails.SendScriptReady(email, script.Title, contentPreview(content), script.ID.String())
		}
	}

	return resp, nil
}

// patchShape papers over cross-platform drift in model output: Instagram
// content missing scenes borrows them from sections, YouTube content missing
// sections borrows from scenes.
func patchShape(platform string, content json.RawMessage) json.RawMessage {
	var data map[string]interface{}
	if err := json.Unmarshal(content, &data); err != nil {
		return content
	}

	switch strings.ToLower(platform) {
	case "instagram":
		if _, ok := data["scenes"]; ok {
			return content
		}
		sections, ok := data["sections"].([]interface{})
		if !ok {
			return content
		}
		scenes := make([]interface{}, 0, len(sections))
		for _, raw := range sections {
			sec, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			scenes = append(scenes, map[string]interface{}{
				"visual":   sec["visual"],
				"overlay":  sec["audio"],
				"duration": "5s",
			})
		}
		data["scenes"] = scenes
	case "youtube":
		if _, ok := data["sections"]; ok {
			return content
		}
		scenes, ok := data["scenes"].([]interface{})
		if !ok {
			return content
		}
		sections := make([]interface{}, 0, len(scenes))
		for _, raw := range scenes {
			sc, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			sections = append(sections, map[string]interface{}{
				"visual": sc["visual"],
				"audio":  sc["overlay"],
			})
		}
		data["sections"] = sections
	default:
		return content
	}

	patched, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to re-encode patched content", "error", err)
		return content
	}
	return patched
}

// contentPreview pulls a short human-readable snippet out of a platform
// payload for the script-ready email.
func contentPreview(content json.RawMessage) string {
	var data map[string]interface{}
	if err := json.Unmarshal(content, &data); err != nil {
		return ""
	}

	for _, key := range []string{"hook", "caption", "body"} {
		if v, ok := data[key].(string); ok && v != "" {
			return v
		}
	}
	if tweets, ok := data["tweets"].([]interface{}); ok && len(tweets) > 0 {
		if first, ok := tweets[0].(string); ok {
			return first
		}
	}
	return ""
}
