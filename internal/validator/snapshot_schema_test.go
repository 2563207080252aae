package validator

import (
	"testing"

	"github.com/SAP-F-2025/readiness-assessment/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSnapshot(t *testing.T) {
	t.Run("absent input", func(t *testing.T) {
		for _, raw := range []string{"", "   ", "null", " null\n"} {
			snapshot, err := ParseSnapshot([]byte(raw))
			assert.NoError(t, err, raw)
			assert.Nil(t, snapshot, raw)
		}
	})

	t.Run("full snapshot", func(t *testing.T) {
		snapshot, err := ParseSnapshot([]byte(`{
			"hasApis": "most",
			"dataAccess": "instant",
			"processDocumentation": "documented",
			"automationExperience": "advanced",
			"mainBlocker": "Budget/resources beperkt",
			"quickCheckScore": 98,
			"quickCheckLevel": "Agent-Ready (Level 5)",
			"source": "quick-check",
			"timestamp": "2026-03-14T09:00:00Z"
		}`))
		require.NoError(t, err)
		require.NotNil(t, snapshot)

		assert.Equal(t, models.ApisMost, snapshot.HasApis)
		assert.Equal(t, models.BlockerBudget, snapshot.MainBlocker)
		require.NotNil(t, snapshot.QuickCheckScore)
		assert.Equal(t, 98, *snapshot.QuickCheckScore)
		assert.Equal(t, "quick-check", snapshot.Source)
		assert.False(t, snapshot.IsEmpty())
	})

	t.Run("out-of-domain values are cleared", func(t *testing.T) {
		snapshot, err := ParseSnapshot([]byte(`{"hasApis":"lots","dataAccess":"minutes","mainBlocker":"Geen idee","quickCheckScore":140}`))
		require.NoError(t, err)
		require.NotNil(t, snapshot)

		assert.Empty(t, snapshot.HasApis)
		assert.Equal(t, models.DataAccessMinutes, snapshot.DataAccess)
		assert.Empty(t, snapshot.MainBlocker)
		assert.Nil(t, snapshot.QuickCheckScore)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := ParseSnapshot([]byte("invalid-json{"))
		assert.ErrorIs(t, err, ErrSnapshotMalformed)
	})

	t.Run("schema mismatch", func(t *testing.T) {
		for _, raw := range []string{
			`"most"`,
			`[1, 2]`,
			`{"hasApis": true}`,
			`{"quickCheckScore": "high"}`,
			`{"quickCheckScore": 7.5}`,
		} {
			_, err := ParseSnapshot([]byte(raw))
			assert.ErrorIs(t, err, ErrSnapshotSchema, raw)
		}
	})
}

func TestSnapshotSchemaCompiles(t *testing.T) {
	schema, err := compiledSnapshotSchema()
	require.NoError(t, err)
	assert.NotNil(t, schema)
}
