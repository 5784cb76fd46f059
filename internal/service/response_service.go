package service

import (
	"context"
	"errors"
	"feelio_backend/internal/model"
	"feelio_backend/internal/repository"
	"feelio_backend/internal/util"
	"feelio_backend/pkg/logger"
	"feelio_backend/pkg/monitoring"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SaveResponseRequest 提交一次作答
type SaveResponseRequest struct {
	UserID           uint     `json:"user_id" binding:"required"`
	NarrativeID      string   `json:"narrative_id" binding:"required"`
	UserAnswer       string   `json:"user_answer"`
	PredictedEmotion []string `json:"predicted_emotion"`
	IsCorrect        bool     `json:"is_correct"`
	Score            int      `json:"score"`
	Feedback         string   `json:"feedback"`
}

// ResponseView 作答记录列表项，字段名与前端保持一致
type ResponseView struct {
	ID               uint          `json:"id"`
	ResponseID       uint          `json:"response_id"`
	NarrativeID      string        `json:"narrative_id"`
	Narrative        NarrativeText `json:"narrative"`
	UserAnswer       string        `json:"user_answer"`
	PredictedEmotion []string      `json:"predicted_emotion"`
	ExpectedEmotions []string      `json:"expected_emotions"`
	NarrativeText    string        `json:"narrative_text"`
	IsCorrect        bool          `json:"is_correct"`
	Feedback         string        `json:"feedback"`
	Score            int           `json:"score"`
	Repeatable       bool          `json:"repeatable"`
	Flagged          bool          `json:"flagged"`
	CreatedAt        string        `json:"created_at"`
}

type NarrativeText struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ResponseService 处理作答记录的写入与修改，计分统一交给 ScoringService
type ResponseService struct {
	DB           *gorm.DB
	ResponseRepo *repository.ResponseRepository
	Scoring      *ScoringService

	now func() time.Time
}

func NewResponseService(db *gorm.DB, responseRepo *repository.ResponseRepository, scoring *ScoringService) *ResponseService {
	return &ResponseService{
		DB:           db,
		ResponseRepo: responseRepo,
		Scoring:      scoring,
		now:          time.Now,
	}
}

// Save 写入作答并重算分数与徽章，返回新记录 ID
func (s *ResponseService) Save(ctx context.Context, req SaveResponseRequest) (uint, error) {
	resp := &model.Response{
		UserID:           req.UserID,
		NarrativeID:      req.NarrativeID,
		UserAnswer:       req.UserAnswer,
		PredictedEmotion: req.PredictedEmotion,
		IsCorrect:        req.IsCorrect,
		Score:            req.Score,
		Feedback:         req.Feedback,
		Repeatable:       false,
		Flagged:          false,
		CreatedAt:        s.now().UTC(),
	}

	var outcome *ScoringOutcome
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		responses := s.ResponseRepo.WithTx(tx)

		// 必须在插入之前检查，否则会查到本条记录
		alreadyCorrect, err := responses.HasCorrect(req.UserID, req.NarrativeID)
		if err != nil {
			return err
		}
		if req.IsCorrect && !alreadyCorrect {
			resp.Score = FirstCorrectReward
		}

		if err := responses.Create(resp); err != nil {
			return fmt.Errorf("create response: %w", err)
		}

		outcome, err = s.Scoring.Recalculate(ctx, tx, req.UserID)
		return err
	})
	if err != nil {
		return 0, err
	}

	monitoring.RecordResponse(resp.IsCorrect)
	s.afterCommit(req.UserID, outcome)
	return resp.ID, nil
}

// OverrideCorrect 人工改判为正确；已经是正确时不做任何事，返回 false
func (s *ResponseService) OverrideCorrect(ctx context.Context, id uint) (bool, error) {
	return s.override(ctx, id, true)
}

// OverrideIncorrect 人工改判为错误；已经是错误时不做任何事，返回 false
func (s *ResponseService) OverrideIncorrect(ctx context.Context, id uint) (bool, error) {
	return s.override(ctx, id, false)
}

func (s *ResponseService) override(ctx context.Context, id uint, correct bool) (bool, error) {
	var (
		changed bool
		userID  uint
		outcome *ScoringOutcome
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		responses := s.ResponseRepo.WithTx(tx)
		resp, err := s.find(responses, id)
		if err != nil {
			return err
		}
		if resp.IsCorrect == correct {
			return nil
		}

		score := 0
		if correct {
			score = FirstCorrectReward
		}
		if err := responses.UpdateFields(id, map[string]interface{}{
			"is_correct": correct,
			"score":      score,
		}); err != nil {
			return fmt.Errorf("update response %d: %w", id, err)
		}

		changed = true
		userID = resp.UserID
		outcome, err = s.Scoring.Recalculate(ctx, tx, resp.UserID)
		return err
	})
	if err != nil {
		return false, err
	}

	if changed {
		s.afterCommit(userID, outcome)
	}
	return changed, nil
}

// AddFollowUp 替换反馈文本；feedback 为 nil 时保留原值。之后仍然完整重算一次。
func (s *ResponseService) AddFollowUp(ctx context.Context, id uint, feedback *string) error {
	var (
		userID  uint
		outcome *ScoringOutcome
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		responses := s.ResponseRepo.WithTx(tx)
		resp, err := s.find(responses, id)
		if err != nil {
			return err
		}

		if feedback != nil {
			if err := responses.UpdateFields(id, map[string]interface{}{"feedback": *feedback}); err != nil {
				return fmt.Errorf("update response %d: %w", id, err)
			}
		}

		userID = resp.UserID
		outcome, err = s.Scoring.Recalculate(ctx, tx, resp.UserID)
		return err
	})
	if err != nil {
		return err
	}

	s.afterCommit(userID, outcome)
	return nil
}

func (s *ResponseService) SetFlagged(ctx context.Context, id uint, flagged bool) error {
	return s.toggle(ctx, id, "flagged", flagged)
}

func (s *ResponseService) SetRepeatable(ctx context.Context, id uint, repeatable bool) error {
	return s.toggle(ctx, id, "repeatable", repeatable)
}

// FlagLatest 标记某用户在某故事上的最新一次作答
func (s *ResponseService) FlagLatest(ctx context.Context, userID uint, narrativeID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		responses := s.ResponseRepo.WithTx(tx)
		latest, err := responses.FindLatest(userID, narrativeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrResponseNotFound
			}
			return err
		}
		return responses.UpdateFields(latest.ID, map[string]interface{}{"flagged": true})
	})
}

func (s *ResponseService) ListByUser(ctx context.Context, userID uint, limit int) ([]ResponseView, error) {
	rows, err := s.ResponseRepo.WithTx(s.DB.WithContext(ctx)).ListByUser(userID, limit)
	if err != nil {
		return nil, err
	}

	views := make([]ResponseView, 0, len(rows))
	for _, r := range rows {
		predicted := []string(r.PredictedEmotion)
		if predicted == nil {
			predicted = []string{}
		}
		expected := []string(r.Narrative.EmotionLabels)
		if expected == nil {
			expected = []string{}
		}
		views = append(views, ResponseView{
			ID:               r.ID,
			ResponseID:       r.ID,
			NarrativeID:      r.NarrativeID,
			Narrative:        NarrativeText{Title: r.Narrative.Title, Content: r.Narrative.Content},
			UserAnswer:       r.UserAnswer,
			PredictedEmotion: predicted,
			ExpectedEmotions: expected,
			NarrativeText:    r.Narrative.Content,
			IsCorrect:        r.IsCorrect,
			Feedback:         r.Feedback,
			Score:            r.Score,
			Repeatable:       r.Repeatable,
			Flagged:          r.Flagged,
			CreatedAt:        r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return views, nil
}

func (s *ResponseService) toggle(ctx context.Context, id uint, column string, value bool) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		responses := s.ResponseRepo.WithTx(tx)
		if _, err := s.find(responses, id); err != nil {
			return err
		}
		return responses.UpdateFields(id, map[string]interface{}{column: value})
	})
}

func (s *ResponseService) find(responses *repository.ResponseRepository, id uint) (*model.Response, error) {
	resp, err := responses.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrResponseNotFound
		}
		return nil, err
	}
	return resp, nil
}

func (s *ResponseService) afterCommit(userID uint, outcome *ScoringOutcome) {
	if outcome == nil {
		return
	}
	for _, b := range outcome.Granted {
		monitoring.RecordBadgeGrant(b.ID)
		logger.Log.Info("badge granted",
			zap.Uint("user_id", userID),
			zap.Uint("badge_id", b.ID),
			zap.String("badge", b.Name),
		)
	}
}
