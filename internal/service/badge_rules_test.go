package service

import (
	"feelio_backend/internal/config"
	"feelio_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func correctResponses(score int, emotions ...[]string) []model.Response {
	out := make([]model.Response, 0, len(emotions))
	for _, e := range emotions {
		out = append(out, model.Response{IsCorrect: true, Score: score, PredictedEmotion: e})
	}
	return out
}

func ruleIDs(rules []BadgeRule) []uint {
	ids := make([]uint, 0, len(rules))
	for _, r := range rules {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestNewLearnerStats(t *testing.T) {
	stats := NewLearnerStats(correctResponses(10,
		[]string{"Happy", " sad "},
		[]string{"happy"},
		nil,
	))

	assert.Equal(t, 3, stats.CorrectCount)
	assert.Equal(t, 30, stats.TotalScore)
	assert.Len(t, stats.Emotions, 2)
	assert.True(t, stats.HasEmotion("happy"))
	assert.True(t, stats.HasEmotion("sad"))
	assert.False(t, stats.HasEmotion("Happy"))
}

func TestDefaultBadgeCatalog_Evaluate(t *testing.T) {
	catalog := DefaultBadgeCatalog()
	require.Len(t, catalog, 12)

	tests := []struct {
		name  string
		stats LearnerStats
		want  []uint
	}{
		{
			name:  "no correct answers",
			stats: NewLearnerStats(nil),
			want:  []uint{},
		},
		{
			name:  "first correct happy answer",
			stats: NewLearnerStats(correctResponses(10, []string{"happy"})),
			want:  []uint{1, 11},
		},
		{
			name: "score thresholds ignore badge points",
			stats: LearnerStats{
				CorrectCount: 4,
				TotalScore:   200,
				Emotions:     map[string]struct{}{},
			},
			want: []uint{1, 5, 6},
		},
		{
			name: "three emotions",
			stats: LearnerStats{
				CorrectCount: 3,
				TotalScore:   30,
				Emotions:     map[string]struct{}{"sad": {}, "fear": {}, "envy": {}},
			},
			want: []uint{1, 9, 12},
		},
		{
			name: "everything",
			stats: LearnerStats{
				CorrectCount: 20,
				TotalScore:   1000,
				Emotions: map[string]struct{}{
					"happy": {}, "sad": {}, "angry": {}, "embarrassed": {}, "fear": {}, "envy": {},
				},
			},
			want: []uint{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ruleIDs(catalog.Evaluate(tt.stats))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBadgeRule_EqualOperator(t *testing.T) {
	rule := BadgeRule{ID: 10, Name: "all", Metric: MetricDistinctEmotions, Operator: OpEqual, Threshold: 6}

	five := LearnerStats{Emotions: map[string]struct{}{"a": {}, "b": {}, "c": {}, "d": {}, "e": {}}}
	assert.False(t, rule.Eligible(five))

	five.Emotions["f"] = struct{}{}
	assert.True(t, rule.Eligible(five))
}

func TestBadgeCatalogFromConfig(t *testing.T) {
	t.Run("empty uses default", func(t *testing.T) {
		catalog, err := BadgeCatalogFromConfig(nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultBadgeCatalog(), catalog)
	})

	t.Run("custom rules", func(t *testing.T) {
		catalog, err := BadgeCatalogFromConfig([]config.BadgeConfig{
			{ID: 1, Name: "Mulai", Points: 5, Metric: "correct_count", Threshold: 1},
			{ID: 2, Name: "Marah", Points: 7, Metric: "emotion", Emotion: "ANGRY"},
		})
		require.NoError(t, err)
		require.Len(t, catalog, 2)
		assert.Equal(t, OpAtLeast, catalog[0].Operator)
		assert.Equal(t, "angry", catalog[1].Emotion)

		stats := NewLearnerStats(correctResponses(10, []string{"angry"}))
		assert.Equal(t, []uint{1, 2}, ruleIDs(catalog.Evaluate(stats)))
	})

	t.Run("invalid rules", func(t *testing.T) {
		cases := map[string][]config.BadgeConfig{
			"missing id":       {{Name: "x", Metric: "correct_count"}},
			"missing name":     {{ID: 1, Metric: "correct_count"}},
			"unknown metric":   {{ID: 1, Name: "x", Metric: "streak"}},
			"unknown operator": {{ID: 1, Name: "x", Metric: "total_score", Operator: "<"}},
			"missing emotion":  {{ID: 1, Name: "x", Metric: "emotion"}},
			"duplicate id": {
				{ID: 1, Name: "x", Metric: "correct_count"},
				{ID: 1, Name: "y", Metric: "correct_count"},
			},
		}
		for name, items := range cases {
			_, err := BadgeCatalogFromConfig(items)
			assert.Error(t, err, name)
		}
	})
}
