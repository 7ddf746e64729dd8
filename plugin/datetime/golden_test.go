package datetime_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hrygo/datetimex/plugin/datetime"
)

type goldenCase struct {
	Query   string         `yaml:"query"`
	Results []goldenResult `yaml:"results"`
}

type goldenResult struct {
	Text  string `yaml:"text"`
	Type  string `yaml:"type"`
	Timex string `yaml:"timex"`
}

func TestModel_Golden(t *testing.T) {
	data, err := os.ReadFile("testdata/golden.yaml")
	require.NoError(t, err)
	var cases []goldenCase
	require.NoError(t, yaml.Unmarshal(data, &cases))
	require.NotEmpty(t, cases)

	m := testModel(t)
	for _, tc := range cases {
		t.Run(tc.Query, func(t *testing.T) {
			got := m.Parse(tc.Query, refTime)
			require.Len(t, got, len(tc.Results), "%+v", got)
			for i, want := range tc.Results {
				assert.Equal(t, want.Text, got[i].Text)
				assert.Equal(t, want.Text, string([]rune(tc.Query)[got[i].Start:got[i].End+1]))
				assert.Equal(t, want.Type, strings.TrimPrefix(got[i].TypeName, datetime.TypeNamePrefix))
				vs := values(t, got[i])
				require.NotEmpty(t, vs)
				assert.Equal(t, want.Timex, vs[0]["timex"])
			}
		})
	}
}
