package service

import (
	"context"
	"errors"
	"feelio_backend/internal/repository"
	"feelio_backend/internal/util"

	"gorm.io/gorm"
)

type StatisticsService struct {
	DB           *gorm.DB
	UserRepo     *repository.UserRepository
	ResponseRepo *repository.ResponseRepository
}

func NewStatisticsService(db *gorm.DB, userRepo *repository.UserRepository, responseRepo *repository.ResponseRepository) *StatisticsService {
	return &StatisticsService{
		DB:           db,
		UserRepo:     userRepo,
		ResponseRepo: responseRepo,
	}
}

type EmotionStat struct {
	Emotion string `json:"emotion"`
	Total   int    `json:"total"`
	Correct int    `json:"correct"`
}

type UserStats struct {
	TotalAttempted int           `json:"total_attempted"`
	TotalCorrect   int           `json:"total_correct"`
	PerEmotion     []EmotionStat `json:"per_emotion"`
	TotalScore     int           `json:"total_score"`
}

// GetUserStats 按情绪统计作答次数与答对次数；一条作答可以同时计入多个情绪
func (s *StatisticsService) GetUserStats(ctx context.Context, userID uint) (*UserStats, error) {
	db := s.DB.WithContext(ctx)

	outcomes, err := s.ResponseRepo.WithTx(db).FindOutcomes(userID)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(util.EmotionLabels))
	stats := &UserStats{PerEmotion: make([]EmotionStat, len(util.EmotionLabels))}
	for i, label := range util.EmotionLabels {
		index[label] = i
		stats.PerEmotion[i] = EmotionStat{Emotion: label}
	}

	for _, r := range outcomes {
		stats.TotalAttempted++
		if r.IsCorrect {
			stats.TotalCorrect++
		}

		seen := make(map[string]bool, len(r.PredictedEmotion))
		for _, label := range r.PredictedEmotion {
			e := util.NormalizeEmotion(label)
			i, ok := index[e]
			if !ok || seen[e] {
				continue
			}
			seen[e] = true
			stats.PerEmotion[i].Total++
			if r.IsCorrect {
				stats.PerEmotion[i].Correct++
			}
		}
	}

	user, err := s.UserRepo.WithTx(db).FindByID(userID)
	switch {
	case err == nil:
		stats.TotalScore = user.TotalScore
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, err
	}
	return stats, nil
}
