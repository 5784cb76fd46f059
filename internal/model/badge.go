package model

import "time"

// Badge 徽章目录，启动时由徽章规则同步
type Badge struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Points      int    `gorm:"not null;default:0" json:"points"`
}

func (Badge) TableName() string {
	return "badges"
}

// UserBadge 授予记录，(user_id, badge_id) 唯一
type UserBadge struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"uniqueIndex:idx_user_badge;not null" json:"userId"`
	BadgeID    uint      `gorm:"uniqueIndex:idx_user_badge;not null" json:"badgeId"`
	DateEarned time.Time `gorm:"not null" json:"dateEarned"`

	Badge Badge `gorm:"foreignKey:BadgeID" json:"badge"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
