package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/emerald/internal/storage"
)

func TestSymptomServiceToggle(t *testing.T) {
	services := newTestServices(t, nil)
	day := mustParseDay(t, "2025-01-21")

	tags, ok, err := services.symptoms.ForDay(day)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, tags)

	tags, err = services.symptoms.Toggle(day, "Cramps")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cramps"}, tags)

	tags, err = services.symptoms.Toggle(day, " Headache ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cramps", "Headache"}, tags)

	tags, err = services.symptoms.Toggle(day, "Cramps")
	require.NoError(t, err)
	assert.Equal(t, []string{"Headache"}, tags)

	result := services.store.Get(SymptomsByDateKey)
	require.Equal(t, storage.StatusFound, result.Status)
	assert.True(t, result.Envelope.Encrypted)
	assert.JSONEq(t, `{"2025-01-21":["Headache"]}`, string(result.Payload))
}

func TestSymptomServiceRemovingLastTagDropsDay(t *testing.T) {
	services := newTestServices(t, nil)
	day := mustParseDay(t, "2025-01-21")

	_, err := services.symptoms.Toggle(day, "Acne")
	require.NoError(t, err)
	tags, err := services.symptoms.Toggle(day, "Acne")
	require.NoError(t, err)
	assert.Empty(t, tags)

	_, ok, err := services.symptoms.ForDay(day)
	require.NoError(t, err)
	assert.False(t, ok)

	days, err := services.symptoms.Days()
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestSymptomServiceRejectsBlankTag(t *testing.T) {
	services := newTestServices(t, nil)

	_, err := services.symptoms.Toggle(mustParseDay(t, "2025-01-21"), "   ")
	assert.ErrorIs(t, err, ErrInvalidSymptomTag)
}

func TestSymptomServiceReadsBrowserWrittenMap(t *testing.T) {
	services := newTestServices(t, nil)
	require.NoError(t, services.store.Put(SymptomsByDateKey, map[string][]string{
		"2025-01-22": {"Bloating"},
		"2025-01-20": {"Cramps", "Backache"},
		"2025-01-25": {},
	}, true))

	days, err := services.symptoms.Days()
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-20", "2025-01-22"}, days)
}

func TestSymptomServiceDiscardsPartiallyDecodableMap(t *testing.T) {
	services := newTestServices(t, nil)
	require.NoError(t, services.store.Put(SymptomsByDateKey, map[string]any{
		"2025-01-01": []string{"Cramps"},
		"2025-01-02": 5,
	}, true))

	byDate, err := services.symptoms.All()
	require.NoError(t, err)
	assert.Empty(t, byDate)

	tags, err := services.symptoms.Toggle(mustParseDay(t, "2025-01-21"), "Acne")
	require.NoError(t, err)
	assert.Equal(t, []string{"Acne"}, tags)

	result := services.store.Get(SymptomsByDateKey)
	require.Equal(t, storage.StatusFound, result.Status)
	assert.JSONEq(t, `{"2025-01-21":["Acne"]}`, string(result.Payload))
}
