package service

import (
	"feelio_backend/internal/config"
	"feelio_backend/internal/model"
	"feelio_backend/internal/util"
	"fmt"
)

type Metric string

const (
	MetricCorrectCount     Metric = "correct_count"
	MetricTotalScore       Metric = "total_score"
	MetricDistinctEmotions Metric = "distinct_emotions"
	MetricEmotion          Metric = "emotion"
)

type Operator string

const (
	OpAtLeast Operator = ">="
	OpEqual   Operator = "=="
)

// LearnerStats 徽章判定所需的统计，只基于答对的记录
type LearnerStats struct {
	CorrectCount int
	TotalScore   int
	Emotions     map[string]struct{}
}

// NewLearnerStats 由答对的记录计算统计
func NewLearnerStats(correct []model.Response) LearnerStats {
	stats := LearnerStats{Emotions: make(map[string]struct{})}
	for _, r := range correct {
		stats.CorrectCount++
		stats.TotalScore += r.Score
		for _, label := range r.PredictedEmotion {
			if e := util.NormalizeEmotion(label); e != "" {
				stats.Emotions[e] = struct{}{}
			}
		}
	}
	return stats
}

func (s LearnerStats) HasEmotion(emotion string) bool {
	_, ok := s.Emotions[emotion]
	return ok
}

type BadgeRule struct {
	ID          uint
	Name        string
	Description string
	Points      int
	Metric      Metric
	Operator    Operator
	Threshold   int
	Emotion     string
}

// Eligible 判断规则是否满足
func (r BadgeRule) Eligible(stats LearnerStats) bool {
	if r.Metric == MetricEmotion {
		return stats.HasEmotion(r.Emotion)
	}

	var value int
	switch r.Metric {
	case MetricCorrectCount:
		value = stats.CorrectCount
	case MetricTotalScore:
		value = stats.TotalScore
	case MetricDistinctEmotions:
		value = len(stats.Emotions)
	default:
		return false
	}

	switch r.Operator {
	case OpAtLeast:
		return value >= r.Threshold
	case OpEqual:
		return value == r.Threshold
	}
	return false
}

func (r BadgeRule) validate() error {
	if r.ID == 0 {
		return fmt.Errorf("badge rule %q: id is required", r.Name)
	}
	if r.Name == "" {
		return fmt.Errorf("badge rule %d: name is required", r.ID)
	}
	switch r.Metric {
	case MetricEmotion:
		if util.NormalizeEmotion(r.Emotion) == "" {
			return fmt.Errorf("badge rule %d: emotion is required for metric %q", r.ID, r.Metric)
		}
		return nil
	case MetricCorrectCount, MetricTotalScore, MetricDistinctEmotions:
	default:
		return fmt.Errorf("badge rule %d: unknown metric %q", r.ID, r.Metric)
	}
	switch r.Operator {
	case OpAtLeast, OpEqual:
	default:
		return fmt.Errorf("badge rule %d: unknown operator %q", r.ID, r.Operator)
	}
	return nil
}

// BadgeCatalog 徽章规则表，按顺序独立判定
type BadgeCatalog []BadgeRule

// Evaluate 返回当前统计下满足的全部规则（不考虑是否已获得）
func (c BadgeCatalog) Evaluate(stats LearnerStats) []BadgeRule {
	var eligible []BadgeRule
	for _, rule := range c {
		if rule.Eligible(stats) {
			eligible = append(eligible, rule)
		}
	}
	return eligible
}

func (c BadgeCatalog) Badges() []model.Badge {
	badges := make([]model.Badge, 0, len(c))
	for _, rule := range c {
		badges = append(badges, model.Badge{
			ID:          rule.ID,
			Name:        rule.Name,
			Description: rule.Description,
			Points:      rule.Points,
		})
	}
	return badges
}

func DefaultBadgeCatalog() BadgeCatalog {
	return BadgeCatalog{
		{ID: 1, Name: "Langkah Pertama", Description: "Menjawab benar untuk pertama kali", Points: 10, Metric: MetricCorrectCount, Operator: OpAtLeast, Threshold: 1},
		{ID: 2, Name: "Pelacak Perasaan", Description: "Menjawab benar 5 kali", Points: 20, Metric: MetricCorrectCount, Operator: OpAtLeast, Threshold: 5},
		{ID: 3, Name: "Detektif Emosi", Description: "Menjawab benar 10 kali", Points: 30, Metric: MetricCorrectCount, Operator: OpAtLeast, Threshold: 10},
		{ID: 4, Name: "Master Empati", Description: "Menjawab benar 20 kali", Points: 40, Metric: MetricCorrectCount, Operator: OpAtLeast, Threshold: 20},
		{ID: 5, Name: "Pengumpul Poin", Description: "Mengumpulkan 100 poin jawaban", Points: 20, Metric: MetricTotalScore, Operator: OpAtLeast, Threshold: 100},
		{ID: 6, Name: "Bintang Poin", Description: "Mengumpulkan 200 poin jawaban", Points: 30, Metric: MetricTotalScore, Operator: OpAtLeast, Threshold: 200},
		{ID: 7, Name: "Juara Poin", Description: "Mengumpulkan 500 poin jawaban", Points: 50, Metric: MetricTotalScore, Operator: OpAtLeast, Threshold: 500},
		{ID: 8, Name: "Legenda Poin", Description: "Mengumpulkan 1000 poin jawaban", Points: 100, Metric: MetricTotalScore, Operator: OpAtLeast, Threshold: 1000},
		{ID: 9, Name: "Penjelajah Emosi", Description: "Mengenali 3 jenis emosi berbeda", Points: 25, Metric: MetricDistinctEmotions, Operator: OpAtLeast, Threshold: 3},
		{ID: 10, Name: "Pakar Emosi", Description: "Mengenali semua 6 jenis emosi", Points: 50, Metric: MetricDistinctEmotions, Operator: OpEqual, Threshold: len(util.EmotionLabels)},
		{ID: 11, Name: "Si Ceria", Description: "Mengenali emosi senang", Points: 15, Metric: MetricEmotion, Emotion: "happy"},
		{ID: 12, Name: "Pengenal Iri", Description: "Mengenali emosi iri", Points: 15, Metric: MetricEmotion, Emotion: "envy"},
	}
}

// BadgeCatalogFromConfig 配置为空时使用内置目录
func BadgeCatalogFromConfig(items []config.BadgeConfig) (BadgeCatalog, error) {
	if len(items) == 0 {
		return DefaultBadgeCatalog(), nil
	}

	seen := make(map[uint]bool, len(items))
	catalog := make(BadgeCatalog, 0, len(items))
	for _, item := range items {
		rule := BadgeRule{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Points:      item.Points,
			Metric:      Metric(item.Metric),
			Operator:    Operator(item.Operator),
			Threshold:   item.Threshold,
			Emotion:     util.NormalizeEmotion(item.Emotion),
		}
		if rule.Operator == "" {
			rule.Operator = OpAtLeast
		}
		if err := rule.validate(); err != nil {
			return nil, err
		}
		if seen[rule.ID] {
			return nil, fmt.Errorf("badge rule %d: duplicate id", rule.ID)
		}
		seen[rule.ID] = true
		catalog = append(catalog, rule)
	}
	return catalog, nil
}
