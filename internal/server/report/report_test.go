package report

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/dmitrijs2005/retailmedia/internal/api"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	got := Normalize(nil)
	assert.Equal(t, DefaultLabels, got.Labels)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0}, got.Data)

	in := &api.UsageData{Labels: []string{"a"}, Data: []int{5}}
	got = Normalize(in)
	if diff := cmp.Diff(*in, got); diff != "" {
		t.Fatalf("Normalize mismatch (-want +got):\n%s", diff)
	}

	got = Normalize(&api.UsageData{Data: []int{1, 2, 3, 4, 5, 6, 7}})
	assert.Equal(t, DefaultLabels, got.Labels)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, got.Data)
}

func TestNormalize_DoesNotAliasDefaults(t *testing.T) {
	got := Normalize(nil)
	got.Labels[0] = "changed"
	assert.Equal(t, "Mon", DefaultLabels[0])
}

func TestChartURL(t *testing.T) {
	u, err := ChartURL(NewChartConfig(Normalize(&api.UsageData{Data: []int{1, 0, 3, 0, 0, 0, 12}})))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(u, QuickChartURL))
	encoded := strings.TrimPrefix(u, QuickChartURL)
	assert.NotContains(t, encoded, "+")
	assert.NotContains(t, encoded, " ")

	raw, err := url.PathUnescape(encoded)
	require.NoError(t, err)

	want := `{"type":"bar","data":{"labels":["Mon","Tue","Wed","Thu","Fri","Sat","Sun"],` +
		`"datasets":[{"label":"Minutes Spent on Site","data":[1,0,3,0,0,0,12],` +
		`"backgroundColor":"rgba(59, 130, 246, 0.5)","borderColor":"rgb(59, 130, 246)","borderWidth":1}]},` +
		`"options":{"title":{"display":true,"text":"Your Weekly Activity (Minutes)"},` +
		`"scales":{"yAxes":[{"ticks":{"beginAtZero":true}}]}}}`
	assert.Equal(t, want, raw)

	var back ChartConfig
	require.NoError(t, json.Unmarshal([]byte(raw), &back))
	assert.Equal(t, "bar", back.Type)
}

func TestRandomJoke(t *testing.T) {
	for range 20 {
		assert.Contains(t, Jokes, RandomJoke())
	}
}
