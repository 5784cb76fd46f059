package repository

import (
	"feelio_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) WithTx(tx *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: tx}
}

// Upsert 同步徽章目录（名称、描述、分值以规则为准）
func (r *BadgeRepository) Upsert(badges []model.Badge) error {
	if len(badges) == 0 {
		return nil
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "points"}),
	}).Create(&badges).Error
}

func (r *BadgeRepository) FindAll() ([]model.Badge, error) {
	var badges []model.Badge
	err := r.DB.Order("id").Find(&badges).Error
	return badges, err
}

func (r *BadgeRepository) HasBadge(userID, badgeID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserBadge{}).
		Where("user_id = ? AND badge_id = ?", userID, badgeID).
		Count(&count).Error
	return count > 0, err
}

// Grant 插入授予记录，唯一索引冲突时忽略；返回是否真正插入
func (r *BadgeRepository) Grant(ub *model.UserBadge) (bool, error) {
	result := r.DB.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(ub)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *BadgeRepository) FindByUser(userID uint) ([]model.UserBadge, error) {
	var grants []model.UserBadge
	err := r.DB.Preload("Badge").
		Where("user_id = ?", userID).
		Order("date_earned, id").
		Find(&grants).Error
	return grants, err
}

// FindUpcoming 返回用户尚未获得的徽章
func (r *BadgeRepository) FindUpcoming(userID uint) ([]model.Badge, error) {
	var badges []model.Badge
	earned := r.DB.Model(&model.UserBadge{}).Select("badge_id").Where("user_id = ?", userID)
	err := r.DB.Where("id NOT IN (?)", earned).Order("id").Find(&badges).Error
	return badges, err
}

func (r *BadgeRepository) SumPoints(userID uint) (int, error) {
	var total int
	err := r.DB.Model(&model.Badge{}).
		Select("COALESCE(SUM(badges.points), 0)").
		Joins("JOIN user_badges ON user_badges.badge_id = badges.id").
		Where("user_badges.user_id = ?", userID).
		Scan(&total).Error
	return total, err
}
