package repository

import (
	"feelio_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

func (r *ResponseRepository) WithTx(tx *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: tx}
}

func (r *ResponseRepository) Create(resp *model.Response) error {
	return r.DB.Omit(clause.Associations).Create(resp).Error
}

func (r *ResponseRepository) FindByID(id uint) (*model.Response, error) {
	var resp model.Response
	err := r.DB.First(&resp, id).Error
	return &resp, err
}

// UpdateFields 只更新指定列，布尔零值也会写入
func (r *ResponseRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.DB.Model(&model.Response{}).Where("id = ?", id).Updates(fields).Error
}

// HasCorrect 判断该用户是否已经答对过这个故事
func (r *ResponseRepository) HasCorrect(userID uint, narrativeID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Response{}).
		Where("user_id = ? AND narrative_id = ? AND is_correct = ?", userID, narrativeID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *ResponseRepository) FindLatest(userID uint, narrativeID string) (*model.Response, error) {
	var resp model.Response
	err := r.DB.Where("user_id = ? AND narrative_id = ?", userID, narrativeID).
		Order("created_at DESC, id DESC").
		First(&resp).Error
	return &resp, err
}

// ListByUser 按时间倒序返回作答记录，limit <= 0 表示不限制
func (r *ResponseRepository) ListByUser(userID uint, limit int) ([]model.Response, error) {
	var responses []model.Response
	query := r.DB.Preload("Narrative").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&responses).Error
	return responses, err
}

// FindCorrect 返回用户所有答对的记录，用于徽章统计
func (r *ResponseRepository) FindCorrect(userID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.DB.Select("id", "score", "predicted_emotion").
		Where("user_id = ? AND is_correct = ?", userID, true).
		Find(&responses).Error
	return responses, err
}

// FindOutcomes 返回用户所有作答的情绪与正误，用于统计
func (r *ResponseRepository) FindOutcomes(userID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.DB.Select("id", "is_correct", "predicted_emotion").
		Where("user_id = ?", userID).
		Find(&responses).Error
	return responses, err
}

func (r *ResponseRepository) SumCorrectScore(userID uint) (int, error) {
	var total int
	err := r.DB.Model(&model.Response{}).
		Select("COALESCE(SUM(score), 0)").
		Where("user_id = ? AND is_correct = ?", userID, true).
		Scan(&total).Error
	return total, err
}

func (r *ResponseRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Response{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *ResponseRepository) CountCorrectByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Response{}).
		Where("user_id = ? AND is_correct = ?", userID, true).
		Count(&count).Error
	return count, err
}
