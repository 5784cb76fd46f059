package service

import (
	"context"
	"errors"
	"feelio_backend/internal/model"
	"feelio_backend/internal/repository"
	"feelio_backend/internal/util"
	"fmt"
	"io"
	"strings"

	"gorm.io/gorm"
)

type NarrativeService struct {
	NarrativeRepo *repository.NarrativeRepository
	Storage       *StorageService
}

func NewNarrativeService(narrativeRepo *repository.NarrativeRepository, storage *StorageService) *NarrativeService {
	return &NarrativeService{
		NarrativeRepo: narrativeRepo,
		Storage:       storage,
	}
}

// NarrativeView 前端使用的故事结构
type NarrativeView struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Text             string   `json:"text"`
	ImagePath        string   `json:"image_path"`
	ExpectedEmotions []string `json:"expectedEmotions"`
	Segment          int      `json:"segment"`
}

type CreateNarrativeRequest struct {
	ID            string   `json:"id" binding:"required,max=10"`
	Title         string   `json:"title" binding:"required"`
	Content       string   `json:"content" binding:"required"`
	ImagePath     string   `json:"image_path"`
	EmotionLabels []string `json:"emotion_labels" binding:"required,min=1"`
	Segment       int      `json:"segment" binding:"required,oneof=1 2"`
}

func toNarrativeView(n *model.Narrative) NarrativeView {
	labels := []string(n.EmotionLabels)
	if labels == nil {
		labels = []string{}
	}
	return NarrativeView{
		ID:               n.ID,
		Title:            n.Title,
		Text:             n.Content,
		ImagePath:        n.ImagePath,
		ExpectedEmotions: labels,
		Segment:          int(n.Segment),
	}
}

func (s *NarrativeService) ListBySegment(ctx context.Context, segment model.Segment) ([]NarrativeView, error) {
	narratives, err := s.NarrativeRepo.FindBySegment(ctx, segment)
	if err != nil {
		return nil, err
	}

	views := make([]NarrativeView, 0, len(narratives))
	for i := range narratives {
		views = append(views, toNarrativeView(&narratives[i]))
	}
	return views, nil
}

func (s *NarrativeService) Get(ctx context.Context, id string) (*NarrativeView, error) {
	narrative, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toNarrativeView(narrative)
	return &view, nil
}

func (s *NarrativeService) Create(ctx context.Context, req CreateNarrativeRequest) (*NarrativeView, error) {
	labels := make([]string, 0, len(req.EmotionLabels))
	for _, l := range req.EmotionLabels {
		if e := util.NormalizeEmotion(l); e != "" {
			labels = append(labels, e)
		}
	}

	narrative := &model.Narrative{
		ID:            strings.TrimSpace(req.ID),
		Title:         req.Title,
		Content:       req.Content,
		ImagePath:     req.ImagePath,
		EmotionLabels: labels,
		Segment:       model.Segment(req.Segment),
	}
	if err := s.NarrativeRepo.Create(ctx, narrative); err != nil {
		return nil, err
	}
	view := toNarrativeView(narrative)
	return &view, nil
}

// UploadImage 上传故事插图并更新 image_path
func (s *NarrativeService) UploadImage(ctx context.Context, id, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	narrative, err := s.find(ctx, id)
	if err != nil {
		return "", err
	}

	if !strings.HasPrefix(contentType, util.MimeImage) {
		return "", fmt.Errorf("%w: content type %q is not an image", util.ErrValidation, contentType)
	}
	key, err := ImageKey(narrative.ID, filename)
	if err != nil {
		return "", err
	}

	url, err := s.Storage.Upload(ctx, key, reader, size, contentType)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if err := s.NarrativeRepo.UpdateImagePath(ctx, narrative, url); err != nil {
		// 回写失败时清理已上传的文件
		_ = s.Storage.Delete(ctx, key)
		return "", err
	}
	return url, nil
}

func (s *NarrativeService) find(ctx context.Context, id string) (*model.Narrative, error) {
	narrative, err := s.NarrativeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNarrativeNotFound
		}
		return nil, err
	}
	return narrative, nil
}
