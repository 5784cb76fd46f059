package repository

import (
	"feelio_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// WithTx 返回绑定到事务的仓储
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{DB: tx}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Omit("Parent").Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

// FindChildren 获取某个陪伴者名下的孩子账号
func (r *UserRepository) FindChildren(parentID uint) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("parent_id = ?", parentID).Order("id").Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateTotalScore(userID uint, total int) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("total_score", total).
		Error
}
