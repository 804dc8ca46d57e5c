package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestBundleParsing(t *testing.T) {
	s := &Script{Content: datatypes.JSON(`{
		"isBundle": true,
		"scripts": [
			{"day":1,"title":"One","content":{"hook":"a"}},
			{"day":2,"title":"Two","content":{"hook":"b"}}
		],
		"completedThrough": 1
	}`)}

	b, err := s.Bundle()
	require.NoError(t, err)
	assert.Len(t, b.Scripts, 2)
	assert.Equal(t, 1, b.CompletedThrough)
	assert.Equal(t, "Two", b.Scripts[1].Title)
}

func TestBundleRejectsPlainScripts(t *testing.T) {
	for _, content := range []string{
		`{"hook":"just a script"}`,
		`{"isBundle": false, "scripts": []}`,
		`not json`,
	} {
		s := &Script{Content: datatypes.JSON(content)}
		_, err := s.Bundle()
		assert.ErrorIs(t, err, ErrNotBundle, "content %q", content)
	}
}

func TestBundleClampsCursor(t *testing.T) {
	s := &Script{Content: datatypes.JSON(`{"isBundle":true,"scripts":[{"day":1,"title":"One"}],"completedThrough":99}`)}
	b, err := s.Bundle()
	require.NoError(t, err)
	assert.Equal(t, 1, b.CompletedThrough)

	s = &Script{Content: datatypes.JSON(`{"isBundle":true,"scripts":[],"completedThrough":-3}`)}
	b, err = s.Bundle()
	require.NoError(t, err)
	assert.Zero(t, b.CompletedThrough)
}

func TestSetBundleRoundTrip(t *testing.T) {
	s := &Script{}
	in := &BundleContent{
		IsBundle:         true,
		Scripts:          []BundleScript{{Day: 1, Title: "One", Content: json.RawMessage(`{"hook":"a"}`)}},
		CompletedThrough: 1,
	}
	require.NoError(t, s.SetBundle(in))

	out, err := s.Bundle()
	require.NoError(t, err)
	assert.Equal(t, in.CompletedThrough, out.CompletedThrough)
	require.Len(t, out.Scripts, 1)
	assert.JSONEq(t, `{"hook":"a"}`, string(out.Scripts[0].Content))
}
