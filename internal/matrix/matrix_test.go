package matrix

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Verdict/internal/saw"
)

const laptopsYAML = `
criteria:
  - id: price
    name: Price
    weight: 0.6
    type: cost
  - name: Build Quality
    weight: 0.4
    type: Benefit
alternatives:
  - name: Laptop A
    scores:
      price: 100
      build-quality: 8
  - id: b
    name: Laptop B
    scores:
      price: 200
      build-quality: null
`

func TestParseAndBuildYAML(t *testing.T) {
	doc, err := Parse([]byte(laptopsYAML))
	require.NoError(t, err)

	criteria, alternatives, err := doc.Build()
	require.NoError(t, err)
	require.Len(t, criteria, 2)
	require.Len(t, alternatives, 2)

	assert.Equal(t, saw.Criterion{ID: "price", Name: "Price", Weight: 0.6, Type: saw.Cost}, criteria[0])
	assert.Equal(t, "build-quality", criteria[1].ID)
	assert.Equal(t, saw.Benefit, criteria[1].Type)

	assert.Equal(t, "laptop-a", alternatives[0].ID)
	v, ok := alternatives[0].Scores["build-quality"].Get()
	assert.True(t, ok)
	assert.Equal(t, 8.0, v)

	assert.Equal(t, "b", alternatives[1].ID)
	assert.False(t, alternatives[1].Scores["build-quality"].Present())
}

func TestParseJSON(t *testing.T) {
	body := `{"criteria":[{"id":"q","name":"Q","weight":1,"type":"benefit"}],` +
		`"alternatives":[{"id":"x","name":"X","scores":{"q":3}},{"id":"y","name":"Y","scores":{}}]}`
	doc, err := Parse([]byte(body))
	require.NoError(t, err)

	criteria, alternatives, err := doc.Build()
	require.NoError(t, err)
	assert.Len(t, criteria, 1)
	assert.True(t, alternatives[0].Scores["q"].Present())
	assert.Contains(t, alternatives[1].Scores, "q")
	assert.False(t, alternatives[1].Scores["q"].Present())
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{
			name: "empty criterion name",
			doc:  Document{Criteria: []CriterionDoc{{Name: " ", Type: "cost"}}},
			want: "name required",
		},
		{
			name: "unknown type",
			doc:  Document{Criteria: []CriterionDoc{{Name: "Speed", Type: "neutral"}}},
			want: "type must be benefit or cost",
		},
		{
			name: "infinite weight",
			doc:  Document{Criteria: []CriterionDoc{{Name: "Speed", Type: "cost", Weight: math.Inf(1)}}},
			want: "weight must be finite",
		},
		{
			name: "duplicate criterion id",
			doc:  Document{Criteria: []CriterionDoc{{Name: "Speed", Type: "cost"}, {Name: "speed", Type: "benefit"}}},
			want: "duplicate id",
		},
		{
			name: "duplicate alternative id",
			doc:  Document{Alternatives: []AlternativeDoc{{Name: "A"}, {Name: "a"}}},
			want: "duplicate id",
		},
		{
			name: "unknown score key",
			doc: Document{
				Criteria:     []CriterionDoc{{ID: "p", Name: "Price", Type: "cost"}},
				Alternatives: []AlternativeDoc{{Name: "A", Scores: map[string]*float64{"q": nil}}},
			},
			want: "unknown criterion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.doc.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader("criterias: []\n"))
	assert.Error(t, err)
}

func TestDecodeEmpty(t *testing.T) {
	doc, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, doc.Criteria)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.yaml")
	require.NoError(t, os.WriteFile(path, []byte(laptopsYAML), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.Alternatives, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "build-quality", Slug("Build Quality"))
	assert.Equal(t, "price-usd", Slug("  Price (USD) "))
	assert.Equal(t, "!!", Slug("!!"))
}

func TestExportRoundTrip(t *testing.T) {
	criteria := []saw.Criterion{
		{ID: "p", Name: "Price", Weight: 0.6, Type: saw.Cost},
		{ID: "q", Name: "Quality", Weight: 0.4, Type: saw.Benefit},
	}
	alternatives := []saw.Alternative{
		{ID: "a", Name: "A", Scores: map[string]saw.Value{"p": saw.Some(100), "q": saw.Absent()}},
	}

	doc := Export(criteria, alternatives)
	require.Len(t, doc.Alternatives, 1)
	assert.Nil(t, doc.Alternatives[0].Scores["q"])
	require.NotNil(t, doc.Alternatives[0].Scores["p"])
	assert.Equal(t, 100.0, *doc.Alternatives[0].Scores["p"])

	gotCriteria, gotAlternatives, err := doc.Build()
	require.NoError(t, err)
	assert.Equal(t, criteria, gotCriteria)
	assert.Equal(t, alternatives, gotAlternatives)
}
