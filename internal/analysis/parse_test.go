package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFencedReply(t *testing.T) {
	raw := "```json\n{\"inconsistencies\":[{\"type\":\"Numerical Conflict\",\"confidence\":0.9,\"slides\":[2,5],\"issue\":\"Revenue mismatch\",\"evidence\":[\"$10M\",\"$12M\"]}]}\n```"

	findings, err := ParseFindings(raw)

	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, TypeNumericalConflict, findings[0].Type)
	assert.Equal(t, 0.9, findings[0].Confidence)
	assert.Equal(t, []int{2, 5}, findings[0].Slides)
	assert.Equal(t, "Revenue mismatch", findings[0].Issue)
	assert.Equal(t, []string{"$10M", "$12M"}, findings[0].Evidence)
}

func TestParseFenceWithoutLanguageTag(t *testing.T) {
	raw := "```\n{\"inconsistencies\": []}\n```"

	findings, err := ParseFindings(raw)

	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestParseEmptyArray(t *testing.T) {
	findings, err := ParseFindings(`{"inconsistencies": []}`)

	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestParseMissingInconsistenciesKey(t *testing.T) {
	findings, err := ParseFindings(`{"something_else": 1}`)

	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestParseDefaultsForAbsentFields(t *testing.T) {
	findings, err := ParseFindings(`{"inconsistencies":[{}]}`)

	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, TypeUnknown, findings[0].Type)
	assert.Equal(t, 0.0, findings[0].Confidence)
	assert.Equal(t, []int{}, findings[0].Slides)
	assert.Equal(t, "", findings[0].Issue)
	assert.Equal(t, []string{}, findings[0].Evidence)
}

func TestParseConfidenceCoercion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"number", `{"inconsistencies":[{"confidence":0.85}]}`, 0.85},
		{"numeric string", `{"inconsistencies":[{"confidence":"0.85"}]}`, 0.85},
		{"non-numeric string", `{"inconsistencies":[{"confidence":"high"}]}`, 0.0},
		{"wrong type", `{"inconsistencies":[{"confidence":true}]}`, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings, err := ParseFindings(tt.raw)
			require.NoError(t, err)
			require.Len(t, findings, 1)
			assert.Equal(t, tt.want, findings[0].Confidence)
		})
	}
}

func TestParseMalformedReply(t *testing.T) {
	for _, raw := range []string{
		"I could not find any problems with this deck.",
		"```json\nnot json at all\n```",
		"",
	} {
		findings, err := ParseFindings(raw)
		assert.Error(t, err, "raw: %q", raw)
		assert.Empty(t, findings)
	}
}
