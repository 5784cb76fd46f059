package repository

import (
	"context"
	"encoding/json"
	"feelio_backend/internal/model"
	"feelio_backend/pkg/logger"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const narrativeCacheKey = "feelio:narratives:segment:%d"

// NarrativeRepository 故事内容不可变，按年龄段列表会缓存到 Redis（可选）
type NarrativeRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	TTL   time.Duration
}

func NewNarrativeRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) *NarrativeRepository {
	return &NarrativeRepository{DB: db, Redis: rdb, TTL: ttl}
}

func (r *NarrativeRepository) FindBySegment(ctx context.Context, segment model.Segment) ([]model.Narrative, error) {
	key := fmt.Sprintf(narrativeCacheKey, segment)
	if r.Redis != nil {
		if cached, err := r.Redis.Get(ctx, key).Bytes(); err == nil {
			var narratives []model.Narrative
			if err := json.Unmarshal(cached, &narratives); err == nil {
				return narratives, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("narrative cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	var narratives []model.Narrative
	if err := r.DB.WithContext(ctx).Where("segment = ?", segment).Order("id").Find(&narratives).Error; err != nil {
		return nil, err
	}

	if r.Redis != nil {
		if data, err := json.Marshal(narratives); err == nil {
			if err := r.Redis.Set(ctx, key, data, r.TTL).Err(); err != nil {
				logger.Log.Warn("narrative cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return narratives, nil
}

func (r *NarrativeRepository) FindByID(ctx context.Context, id string) (*model.Narrative, error) {
	var narrative model.Narrative
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&narrative).Error
	return &narrative, err
}

func (r *NarrativeRepository) Create(ctx context.Context, narrative *model.Narrative) error {
	if err := r.DB.WithContext(ctx).Create(narrative).Error; err != nil {
		return err
	}
	r.invalidate(ctx, narrative.Segment)
	return nil
}

// UpdateImagePath 图片上传后回写路径并清除该年龄段缓存
func (r *NarrativeRepository) UpdateImagePath(ctx context.Context, narrative *model.Narrative, path string) error {
	err := r.DB.WithContext(ctx).Model(&model.Narrative{}).
		Where("id = ?", narrative.ID).
		Update("image_path", path).Error
	if err != nil {
		return err
	}
	narrative.ImagePath = path
	r.invalidate(ctx, narrative.Segment)
	return nil
}

func (r *NarrativeRepository) invalidate(ctx context.Context, segment model.Segment) {
	if r.Redis == nil {
		return
	}
	key := fmt.Sprintf(narrativeCacheKey, segment)
	if err := r.Redis.Del(ctx, key).Err(); err != nil {
		logger.Log.Warn("narrative cache invalidate failed", zap.String("key", key), zap.Error(err))
	}
}
