package model

type UserRole string

const (
	Kid      UserRole = "kid"
	Guardian UserRole = "pendamping"
)

// Segment 年龄段：1 为 7-9 岁，2 为 10-12 岁
type Segment int

const (
	SegmentYounger Segment = 1
	SegmentOlder   Segment = 2
)

// Label 返回前端使用的年龄段标识
func (s Segment) Label() string {
	switch s {
	case SegmentYounger:
		return "7-9"
	case SegmentOlder:
		return "10-12"
	default:
		return ""
	}
}

// swagger:model User
type User struct {
	BaseModel
	Name         string   `gorm:"size:100;not null" json:"name"`
	Email        string   `gorm:"size:100;unique;not null" json:"email"`
	PasswordHash string   `gorm:"type:text;not null" json:"-"`
	Segment      Segment  `gorm:"not null" json:"segment"`
	Role         UserRole `gorm:"size:20;default:'kid'" json:"role"`
	ParentID     *uint    `gorm:"index" json:"parentId,omitempty"`
	Parent       *User    `gorm:"foreignKey:ParentID" json:"-"`
	// TotalScore 是缓存值，只能由 ScoringService.Recalculate 写入
	TotalScore int `gorm:"default:0;not null" json:"totalScore"`
}

func (User) TableName() string {
	return "users"
}
