package service

import (
	"context"
	"feelio_backend/internal/repository"
	"feelio_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type AchievementService struct {
	DB           *gorm.DB
	BadgeRepo    *repository.BadgeRepository
	ResponseRepo *repository.ResponseRepository
}

func NewAchievementService(
	db *gorm.DB,
	badgeRepo *repository.BadgeRepository,
	responseRepo *repository.ResponseRepository,
) *AchievementService {
	return &AchievementService{
		DB:           db,
		BadgeRepo:    badgeRepo,
		ResponseRepo: responseRepo,
	}
}

type BadgeView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageSrc    string `json:"imageSrc"`
	Points      int    `json:"points"`
}

type Achievement struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"userId"`
	Badge      BadgeView `json:"badge"`
	Points     int       `json:"points"`
	DateEarned string    `json:"dateEarned"`
}

// UpcomingBadge 未获得的徽章不返回分值
type UpcomingBadge struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageSrc    string `json:"imageSrc"`
}

type Summary struct {
	TotalScore     int   `json:"total_score"`
	TotalResponses int64 `json:"total_responses"`
}

func (s *AchievementService) GetAchievements(ctx context.Context, userID uint) ([]Achievement, error) {
	grants, err := s.BadgeRepo.WithTx(s.DB.WithContext(ctx)).FindByUser(userID)
	if err != nil {
		return nil, err
	}

	result := make([]Achievement, 0, len(grants))
	for _, g := range grants {
		result = append(result, Achievement{
			ID:     g.ID,
			UserID: g.UserID,
			Badge: BadgeView{
				ID:          g.Badge.ID,
				Name:        g.Badge.Name,
				Description: g.Badge.Description,
				ImageSrc:    util.ImageSrc(g.Badge.Name),
				Points:      g.Badge.Points,
			},
			Points:     g.Badge.Points,
			DateEarned: g.DateEarned.UTC().Format(time.RFC3339),
		})
	}
	return result, nil
}

func (s *AchievementService) GetUpcoming(ctx context.Context, userID uint) ([]UpcomingBadge, error) {
	badges, err := s.BadgeRepo.WithTx(s.DB.WithContext(ctx)).FindUpcoming(userID)
	if err != nil {
		return nil, err
	}

	result := make([]UpcomingBadge, 0, len(badges))
	for _, b := range badges {
		result = append(result, UpcomingBadge{
			ID:          b.ID,
			Name:        b.Name,
			Description: b.Description,
			ImageSrc:    util.ImageSrc(b.Name),
		})
	}
	return result, nil
}

// GetSummary 直接从作答与徽章表计算，不读 users.total_score 缓存
func (s *AchievementService) GetSummary(ctx context.Context, userID uint) (*Summary, error) {
	db := s.DB.WithContext(ctx)
	responses := s.ResponseRepo.WithTx(db)

	responseScore, err := responses.SumCorrectScore(userID)
	if err != nil {
		return nil, err
	}
	badgePoints, err := s.BadgeRepo.WithTx(db).SumPoints(userID)
	if err != nil {
		return nil, err
	}
	total, err := responses.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalScore:     responseScore + badgePoints,
		TotalResponses: total,
	}, nil
}
