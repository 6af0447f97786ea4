package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func entryNames(entries []TypeEntry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
	}
	return names
}

func TestResolve(t *testing.T) {
	c := testCatalog(t)

	tests := []struct {
		name     string
		keywords string
		want     []string
	}{
		{
			name:     "empty input",
			keywords: "",
			want:     []string{},
		},
		{
			name:     "whitespace-only input",
			keywords: "   ",
			want:     []string{},
		},
		{
			name:     "commas with no tokens",
			keywords: " , , ",
			want:     []string{},
		},
		{
			name:     "type description match",
			keywords: "humidity",
			want:     []string{"humidity_sensor"},
		},
		{
			name:     "attribute description match",
			keywords: "consumption",
			want:     []string{"plug"},
		},
		{
			name:     "multiple keywords in catalog order",
			keywords: "temperature,humidity",
			want:     []string{"thermometer", "humidity_sensor", "hvac_unit"},
		},
		{
			name:     "case-insensitive matching",
			keywords: "TEMPERATURE,Humidity",
			want:     []string{"thermometer", "humidity_sensor", "hvac_unit"},
		},
		{
			name:     "tokens are trimmed",
			keywords: " temperature , humidity ",
			want:     []string{"thermometer", "humidity_sensor", "hvac_unit"},
		},
		{
			name:     "no match",
			keywords: "submarine",
			want:     []string{},
		},
		{
			name:     "shared attribute matches every type once",
			keywords: "building",
			want:     []string{"thermometer", "humidity_sensor", "hvac_unit", "plug"},
		},
		{
			name:     "keywords matching one type twice yield it once",
			keywords: "temperature,celsius",
			want:     []string{"thermometer", "hvac_unit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Resolve(tt.keywords)
			assert.Equal(t, tt.want, entryNames(got))
		})
	}
}

func TestResolveReturnsFullEntries(t *testing.T) {
	c := testCatalog(t)

	got := c.Resolve("consumption")
	assert.Len(t, got, 1)
	assert.Equal(t, "plug", got[0].Name)
	assert.Equal(t, "Smart plug that meters the appliance connected to it", got[0].Description)
	assert.Len(t, got[0].Attributes, 3)
}

func TestResolveNeverErrorsOnGarbage(t *testing.T) {
	c := testCatalog(t)

	// Resolution is a pure lookup: odd separators and unmatched tokens
	// degrade to an empty result rather than an error.
	assert.Empty(t, c.Resolve(",,,"))
	assert.Empty(t, c.Resolve(";;"))
	assert.NotNil(t, c.Resolve(""))
}
