package service

import (
	"context"
	"errors"
	"feelio_backend/internal/model"
	"feelio_backend/internal/repository"
	"feelio_backend/internal/util"
	"feelio_backend/pkg/logger"
	"feelio_backend/pkg/tracing"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FirstCorrectReward 每个故事第一次答对的得分
const FirstCorrectReward = 10

// ScoringOutcome 一次重算的结果
type ScoringOutcome struct {
	Stats      LearnerStats
	Granted    []model.Badge
	TotalScore int
}

// ScoringService 计分与徽章引擎。
// 所有改变作答记录的操作都必须在同一事务里调用 Recalculate，total_score 只在这里写入。
type ScoringService struct {
	UserRepo     *repository.UserRepository
	ResponseRepo *repository.ResponseRepository
	BadgeRepo    *repository.BadgeRepository
	Catalog      BadgeCatalog

	now func() time.Time
}

func NewScoringService(
	userRepo *repository.UserRepository,
	responseRepo *repository.ResponseRepository,
	badgeRepo *repository.BadgeRepository,
	catalog BadgeCatalog,
) *ScoringService {
	return &ScoringService{
		UserRepo:     userRepo,
		ResponseRepo: responseRepo,
		BadgeRepo:    badgeRepo,
		Catalog:      catalog,
		now:          time.Now,
	}
}

// SyncCatalog 把规则表写入 badges 表，启动时调用
func (s *ScoringService) SyncCatalog() error {
	return s.BadgeRepo.Upsert(s.Catalog.Badges())
}

// Recalculate 在事务 tx 内：统计答对记录、授予新徽章、从头重算 total_score。
// 徽章只授予不回收；重复调用不会产生重复授予。
func (s *ScoringService) Recalculate(ctx context.Context, tx *gorm.DB, userID uint) (*ScoringOutcome, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ScoringService.Recalculate")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", int64(userID)))

	tx = tx.WithContext(ctx)
	users := s.UserRepo.WithTx(tx)
	responses := s.ResponseRepo.WithTx(tx)
	badges := s.BadgeRepo.WithTx(tx)

	if _, err := users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recalculate user %d: %w", userID, util.ErrUserNotFound)
		}
		return nil, err
	}

	correct, err := responses.FindCorrect(userID)
	if err != nil {
		return nil, fmt.Errorf("load correct responses: %w", err)
	}
	stats := NewLearnerStats(correct)

	outcome := &ScoringOutcome{Stats: stats}
	for _, rule := range s.Catalog.Evaluate(stats) {
		held, err := badges.HasBadge(userID, rule.ID)
		if err != nil {
			return nil, fmt.Errorf("check badge %d: %w", rule.ID, err)
		}
		if held {
			continue
		}

		inserted, err := badges.Grant(&model.UserBadge{
			UserID:     userID,
			BadgeID:    rule.ID,
			DateEarned: s.now().UTC(),
		})
		if err != nil {
			return nil, fmt.Errorf("grant badge %d: %w", rule.ID, err)
		}
		if inserted {
			outcome.Granted = append(outcome.Granted, model.Badge{
				ID:          rule.ID,
				Name:        rule.Name,
				Description: rule.Description,
				Points:      rule.Points,
			})
		}
	}

	badgePoints, err := badges.SumPoints(userID)
	if err != nil {
		return nil, fmt.Errorf("sum badge points: %w", err)
	}

	outcome.TotalScore = stats.TotalScore + badgePoints
	if err := users.UpdateTotalScore(userID, outcome.TotalScore); err != nil {
		return nil, fmt.Errorf("update total score: %w", err)
	}

	span.SetAttributes(
		attribute.Int("score.total", outcome.TotalScore),
		attribute.Int("badges.granted", len(outcome.Granted)),
	)
	logger.Log.Debug("score recalculated",
		zap.Uint("user_id", userID),
		zap.Int("correct_count", stats.CorrectCount),
		zap.Int("response_score", stats.TotalScore),
		zap.Int("badge_points", badgePoints),
		zap.Int("granted", len(outcome.Granted)),
	)
	return outcome, nil
}
