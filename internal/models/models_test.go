package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMapRoundTrip(t *testing.T) {
	m := JSONMap{"steps": []interface{}{"transcribe"}, "count": float64(2)}

	value, err := m.Value()
	require.NoError(t, err)

	var decoded JSONMap
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, float64(2), decoded["count"])
}

func TestStringListScanFromString(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan(`["transcribe","manual_cut"]`))
	assert.Equal(t, StringList{"transcribe", "manual_cut"}, l)
}

func TestStringListNilValue(t *testing.T) {
	var l StringList
	value, err := l.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
}

func TestPipelineRunBeforeCreateGeneratesUUID(t *testing.T) {
	run := &PipelineRun{UserID: "u1", EpisodeID: "e1", Status: RunStatusCompleted}
	require.NoError(t, run.BeforeCreate(nil))
	assert.NotEmpty(t, run.UUID)
}
