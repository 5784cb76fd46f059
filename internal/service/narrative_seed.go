package service

import (
	"context"
	"errors"
	"feelio_backend/internal/util"
	"fmt"

	"gopkg.in/yaml.v3"
)

// NarrativeSeed 种子文件中的一条故事
type NarrativeSeed struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Content  string   `yaml:"content"`
	Image    string   `yaml:"image"`
	Emotions []string `yaml:"emotions"`
	Segment  int      `yaml:"segment"`
}

type narrativeSeedFile struct {
	Narratives []NarrativeSeed `yaml:"narratives"`
}

// emotionAliases 前端早期使用的标签名
var emotionAliases = map[string]string{
	"scared":  "fear",
	"jealous": "envy",
}

// ParseNarrativeSeeds 解析 YAML 种子文件并校验情绪标签
func ParseNarrativeSeeds(data []byte) ([]CreateNarrativeRequest, error) {
	var file narrativeSeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse narrative seeds: %w", err)
	}

	known := make(map[string]bool, len(util.EmotionLabels))
	for _, l := range util.EmotionLabels {
		known[l] = true
	}

	reqs := make([]CreateNarrativeRequest, 0, len(file.Narratives))
	for _, n := range file.Narratives {
		if n.ID == "" || len(n.ID) > 10 {
			return nil, fmt.Errorf("%w: narrative id %q must be 1-10 characters", util.ErrValidation, n.ID)
		}
		if n.Segment != 1 && n.Segment != 2 {
			return nil, fmt.Errorf("%w: narrative %s has segment %d", util.ErrValidation, n.ID, n.Segment)
		}

		labels := make([]string, 0, len(n.Emotions))
		for _, e := range n.Emotions {
			e = util.NormalizeEmotion(e)
			if alias, ok := emotionAliases[e]; ok {
				e = alias
			}
			if !known[e] {
				return nil, fmt.Errorf("%w: narrative %s has unknown emotion %q", util.ErrValidation, n.ID, e)
			}
			labels = append(labels, e)
		}

		reqs = append(reqs, CreateNarrativeRequest{
			ID:            n.ID,
			Title:         n.Title,
			Content:       n.Content,
			ImagePath:     n.Image,
			EmotionLabels: labels,
			Segment:       n.Segment,
		})
	}
	return reqs, nil
}

// Seed 写入尚不存在的故事，已存在的跳过；返回新写入的数量
func (s *NarrativeService) Seed(ctx context.Context, reqs []CreateNarrativeRequest) (int, error) {
	created := 0
	for _, req := range reqs {
		_, err := s.find(ctx, req.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, util.ErrNarrativeNotFound) {
			return created, err
		}
		if _, err := s.Create(ctx, req); err != nil {
			return created, fmt.Errorf("seed narrative %s: %w", req.ID, err)
		}
		created++
	}
	return created, nil
}
