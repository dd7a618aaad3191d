package critic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerdictPlainJSON(t *testing.T) {
	v, err := parseVerdict(`{"has_gaps": true, "critique": "missing detail", "suggestions": ["add dates"]}`)
	require.NoError(t, err)
	assert.True(t, v.HasGaps)
	assert.Equal(t, "missing detail", v.Critique)
	assert.Equal(t, []string{"add dates"}, v.Suggestions)
}

func TestParseVerdictCodeFence(t *testing.T) {
	raw := "```json\n{\"has_gaps\": false, \"critique\": \"fine\", \"suggestions\": []}\n```"
	v, err := parseVerdict(raw)
	require.NoError(t, err)
	assert.False(t, v.HasGaps)
	assert.Equal(t, "fine", v.Critique)
}

func TestParseVerdictSurroundingProse(t *testing.T) {
	raw := `Here is my evaluation: {"has_gaps": true, "critique": "ok", "suggestions": []} hope that helps`
	v, err := parseVerdict(raw)
	require.NoError(t, err)
	assert.True(t, v.HasGaps)
}

func TestParseVerdictNoJSON(t *testing.T) {
	_, err := parseVerdict("the answer looks good to me")
	assert.Error(t, err)
}

func TestParseVerdictMalformedJSON(t *testing.T) {
	_, err := parseVerdict(`{"has_gaps": maybe}`)
	assert.Error(t, err)
}
