package service

import (
	"bytes"
	"context"
	"encoding/json"
	"feelio_backend/internal/config"
	"feelio_backend/internal/util"
	"feelio_backend/pkg/monitoring"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Prediction 多标签情绪分类结果，Probabilities 与 util.EmotionLabels 一一对应
type Prediction struct {
	Probabilities []float64 `json:"probabilities"`
	Labels        []string  `json:"labels"`
	Top           string    `json:"top"`
}

// ClassifierService 调用外部情绪分类推理服务
type ClassifierService struct {
	mu     sync.RWMutex
	config config.ClassifierConfig
	client *http.Client
}

func NewClassifierService(cfg config.ClassifierConfig) *ClassifierService {
	return &ClassifierService{
		config: cfg,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second},
	}
}

func (s *ClassifierService) UpdateConfig(cfg config.ClassifierConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	s.client = &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second}
}

func (s *ClassifierService) snapshot() (config.ClassifierConfig, *http.Client) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config, s.client
}

func (s *ClassifierService) Predict(ctx context.Context, text string) (prediction *Prediction, err error) {
	cfg, client := s.snapshot()
	if cfg.URL == "" {
		return nil, util.ErrClassifierDisabled
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", util.ErrValidation)
	}

	start := time.Now()
	defer func() { monitoring.ObserveExternalCall("classifier", start, err) }()

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	endpoint := strings.TrimRight(cfg.URL, "/") + "/predict"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Probabilities []float64 `json:"probabilities"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return Decode(result.Probabilities, cfg.Threshold)
}

// Decode 将 sigmoid 概率向量转换为标签，概率不低于 threshold 的都算命中
func Decode(probabilities []float64, threshold float64) (*Prediction, error) {
	if len(probabilities) != len(util.EmotionLabels) {
		return nil, fmt.Errorf("classifier returned %d probabilities, want %d", len(probabilities), len(util.EmotionLabels))
	}

	p := &Prediction{Probabilities: probabilities, Labels: []string{}}
	best := -1.0
	for i, prob := range probabilities {
		if prob >= threshold {
			p.Labels = append(p.Labels, util.EmotionLabels[i])
		}
		if prob > best {
			best = prob
			p.Top = util.EmotionLabels[i]
		}
	}
	return p, nil
}
