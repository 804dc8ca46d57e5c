package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/scriptgo/backend/internal/dto"
	"github.com/scriptgo/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateScriptDefaults(t *testing.T) {
	svc := NewScriptService(newTestDB(t))
	user := newTestUser(t, svc.db, "s@example.com", false)

	script, err := svc.Create(user.ID, &dto.SaveScriptRequest{
		Platform: "YouTube",
		Content:  json.RawMessage(`{"hook":"hi"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Untitled Script", script.Title)
	assert.NotEqual(t, uuid.Nil, script.ID)
	assert.Nil(t, script.ScheduledDate)
}

func TestCreateScriptScheduledDate(t *testing.T) {
	svc := NewScriptService(newTestDB(t))
	user := newTestUser(t, svc.db, "s@example.com", false)

	script, err := svc.Create(user.ID, &dto.SaveScriptRequest{
		Title:         "Launch day",
		Content:       json.RawMessage(`{}`),
		ScheduledDate: "2026-04-01",
	})
	require.NoError(t, err)
	require.NotNil(t, script.ScheduledDate)
	assert.Equal(t, "2026-04-01", script.ScheduledDate.Format("2006-01-02"))

	_, err = svc.Create(user.ID, &dto.SaveScriptRequest{
		Content:       json.RawMessage(`{}`),
		ScheduledDate: "April 1st",
	})
	assert.Error(t, err)
}

func TestScriptContentRoundTrip(t *testing.T) {
	svc := NewScriptService(newTestDB(t))
	user := newTestUser(t, svc.db, "s@example.com", false)

	content := `{"caption":"New reel","hashtags":["#go","#backend"],"scenes":[{"visual":"desk shot","overlay":"day 1","duration":"5s"}]}`
	created, err := svc.Create(user.ID, &dto.SaveScriptRequest{
		Title:    "Reel",
		Platform: "Instagram",
		Content:  json.RawMessage(content),
	})
	require.NoError(t, err)

	got, err := svc.Get(user.ID, created.ID)
	require.NoError(t, err)
	assert.JSONEq(t, content, string(got.Content))
}

func TestUpdateScript(t *testing.T) {
	svc := NewScriptService(newTestDB(t))
	user := newTestUser(t, svc.db, "s@example.com", false)

	created, err := svc.Create(user.ID, &dto.SaveScriptRequest{
		Title:   "Before",
		Tone:    "Casual",
		Content: json.RawMessage(`{"hook":"original"}`),
	})
	require.NoError(t, err)

	updated, err := svc.Update(user.ID, created.ID, &dto.SaveScriptRequest{
		Title: "After",
		Tone:  "Professional",
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, "Professional", updated.Tone)
	// Empty content in the request leaves stored content untouched.
	assert.JSONEq(t, `{"hook":"original"}`, string(updated.Content))
}

func TestUpdateScriptNotFound(t *testing.T) {
	svc := NewScriptService(newTestDB(t))
	user := newTestUser(t, svc.db, "s@example.com", false)

	_, err := svc.Update(user.ID, uuid.New(), &dto.SaveScriptRequest{Title: "x"})
	assert.ErrorIs(t, err, ErrScriptNotFound)
}

func TestListScriptsPagination(t *testing.T) {
	svc := NewScriptService(newTestDB(t))
	user := newTestUser(t, svc.db, "s@example.com", false)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		script, err := svc.Create(user.ID, &dto.SaveScriptRequest{
			Title:   string(rune('A' + i)),
			Content: json.RawMessage(`{}`),
		})
		require.NoError(t, err)
		// Spread creation times so the DESC ordering is deterministic.
		require.NoError(t, svc.db.Model(script).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	scripts, total, err := svc.List(user.ID, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, scripts, 2)
	assert.Equal(t, "E", scripts[0].Title)
	assert.Equal(t, "D", scripts[1].Title)

	scripts, _, err = svc.List(user.ID, 2, 4)
	require.NoError(t, err)
	require.Len(t, scripts, 1)
	assert.Equal(t, "A", scripts[0].Title)
}

func TestScriptOwnerIsolation(t *testing.T) {
	svc := NewScriptService(newTestDB(t))
	alice := newTestUser(t, svc.db, "alice@example.com", false)
	bob := newTestUser(t, svc.db, "bob@example.com", false)

	script, err := svc.Create(alice.ID, &dto.SaveScriptRequest{
		Title:   "Alice's script",
		Content: json.RawMessage(`{}`),
	})
	require.NoError(t, err)

	// Someone else's row behaves exactly like a missing row.
	_, err = svc.Get(bob.ID, script.ID)
	assert.ErrorIs(t, err, ErrScriptNotFound)

	assert.ErrorIs(t, svc.Delete(bob.ID, script.ID), ErrScriptNotFound)

	// The failed cross-owner delete did not touch the row.
	got, err := svc.Get(alice.ID, script.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice's script", got.Title)
}

func TestDeleteScript(t *testing.T) {
	svc := NewScriptService(newTestDB(t))
	user := newTestUser(t, svc.db, "s@example.com", false)

	script, err := svc.Create(user.ID, &dto.SaveScriptRequest{Content: json.RawMessage(`{}`)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(user.ID, script.ID))

	_, err = svc.Get(user.ID, script.ID)
	assert.ErrorIs(t, err, ErrScriptNotFound)

	// Deleting twice reports not found.
	assert.ErrorIs(t, svc.Delete(user.ID, script.ID), ErrScriptNotFound)
}

func TestToggleStar(t *testing.T) {
	svc := NewScriptService(newTestDB(t))
	user := newTestUser(t, svc.db, "s@example.com", false)

	script, err := svc.Create(user.ID, &dto.SaveScriptRequest{Content: json.RawMessage(`{}`)})
	require.NoError(t, err)
	assert.False(t, script.Starred)

	starred, err := svc.ToggleStar(user.ID, script.ID)
	require.NoError(t, err)
	assert.True(t, starred.Starred)

	unstarred, err := svc.ToggleStar(user.ID, script.ID)
	require.NoError(t, err)
	assert.False(t, unstarred.Starred)
}

func saveTestBundle(t *testing.T, svc *ScriptService, userID uuid.UUID, days int) *models.Script {
	t.Helper()

	scripts := make([]dto.CalendarScript, 0, days)
	for d := 1; d <= days; d++ {
		scripts = append(scripts, dto.CalendarScript{
			Day:           d,
			Title:         string(rune('A' + d - 1)),
			Content:       json.RawMessage(`{"hook":"day content"}`),
			ScheduledDate: "2026-05-01",
		})
	}
	bundle, err := svc.SaveBundle(userID, "Go tips", scripts)
	require.NoError(t, err)
	return bundle
}

func TestSaveBundle(t *testing.T) {
	svc := NewScriptService(newTestDB(t))
	user := newTestUser(t, svc.db, "s@example.com", false)

	bundle := saveTestBundle(t, svc, user.ID, 3)
	assert.Equal(t, "3-Day Plan: Go tips", bundle.Title)
	assert.Equal(t, "Multiple", bundle.Platform)
	assert.Equal(t, "Mixed", bundle.Tone)
	assert.Equal(t, "3 Days", bundle.Length)
	require.NotNil(t, bundle.ScheduledDate)
	assert.Equal(t, "2026-05-01", bundle.ScheduledDate.Format("2006-01-02"))

	parsed, err := bundle.Bundle()
	require.NoError(t, err)
	assert.True(t, parsed.IsBundle)
	assert.Len(t, parsed.Scripts, 3)
	assert.Zero(t, parsed.CompletedThrough)
}

func TestSaveBundleEmpty(t *testing.T) {
	svc := NewScriptService(newTestDB(t))
	user := newTestUser(t, svc.db, "s@example.com", false)

	_, err := svc.SaveBundle(user.ID, "topic", nil)
	assert.ErrorIs(t, err, ErrEmptyBundle)
}

func TestSaveBundleAssignsMissingDays(t *testing.T) {
	svc := NewScriptService(newTestDB(t))
	user := newTestUser(t, svc.db, "s@example.com", false)

	bundle, err := svc.SaveBundle(user.ID, "topic", []dto.CalendarScript{
		{Title: "First", Content: json.RawMessage(`{}`)},
		{Title: "Second", Content: json.RawMessage(`{}`)},
	})
	require.NoError(t, err)

	parsed, err := bundle.Bundle()
	require.NoError(t, err)
	assert.Equal(t, 1, parsed.Scripts[0].Day)
	assert.Equal(t, 2, parsed.Scripts[1].Day)
}

func TestCompletionCursorClamping(t *testing.T) {
	svc := NewScriptService(newTestDB(t))
	user := newTestUser(t, svc.db, "s@example.com", false)
	bundle := saveTestBundle(t, svc, user.ID, 2)

	// Undo at zero stays at zero.
	b, err := svc.UndoDayComplete(user.ID, bundle.ID)
	require.NoError(t, err)
	assert.Zero(t, b.CompletedThrough)

	// Advance past the end clamps at the day count.
	for i := 0; i < 4; i++ {
		b, err = svc.MarkDayComplete(user.ID, bundle.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, b.CompletedThrough)

	// Cursor survives a reload.
	got, err := svc.Get(user.ID, bundle.ID)
	require.NoError(t, err)
	parsed, err := got.Bundle()
	require.NoError(t, err)
	assert.Equal(t, 2, parsed.CompletedThrough)

	b, err = svc.UndoDayComplete(user.ID, bundle.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, b.CompletedThrough)
}

func TestCompletionOnPlainScript(t *testing.T) {
	svc := NewScriptService(newTestDB(t))
	user := newTestUser(t, svc.db, "s@example.com", false)

	script, err := svc.Create(user.ID, &dto.SaveScriptRequest{
		Content: json.RawMessage(`{"hook":"not a bundle"}`),
	})
	require.NoError(t, err)

	_, err = svc.MarkDayComplete(user.ID, script.ID)
	assert.ErrorIs(t, err, models.ErrNotBundle)
}

func TestCalendarView(t *testing.T) {
	svc := NewScriptService(newTestDB(t))
	user := newTestUser(t, svc.db, "s@example.com", false)
	bundle := saveTestBundle(t, svc, user.ID, 3)

	_, err := svc.MarkDayComplete(user.ID, bundle.ID)
	require.NoError(t, err)

	view, err := svc.CalendarView(user.ID, bundle.ID)
	require.NoError(t, err)
	assert.Equal(t, bundle.ID.String(), view.ScriptID)
	assert.Equal(t, 1, view.CompletedThrough)
	require.Len(t, view.Days, 3)

	assert.Equal(t, "completed", view.Days[0].Status)
	assert.Equal(t, "active", view.Days[1].Status)
	assert.Equal(t, "pending", view.Days[2].Status)

	// Dates derive from the bundle's scheduled start date.
	assert.Equal(t, "2026-05-01", view.Days[0].ScheduledDate)
	assert.Equal(t, "2026-05-02", view.Days[1].ScheduledDate)
	assert.Equal(t, "2026-05-03", view.Days[2].ScheduledDate)
}

func TestCalendarViewOnPlainScript(t *testing.T) {
	svc := NewScriptService(newTestDB(t))
	user := newTestUser(t, svc.db, "s@example.com", false)

	script, err := svc.Create(user.ID, &dto.SaveScriptRequest{
		Content: json.RawMessage(`{"tweets":["just one"]}`),
	})
	require.NoError(t, err)

	_, err = svc.CalendarView(user.ID, script.ID)
	assert.ErrorIs(t, err, models.ErrNotBundle)
}
