package model

import (
	"time"

	"gorm.io/datatypes"
)

// Response 学习者对一个故事的一次作答，只追加不删除
type Response struct {
	ID               uint                        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           uint                        `gorm:"index:idx_responses_user_narrative;not null" json:"userId"`
	NarrativeID      string                      `gorm:"index:idx_responses_user_narrative;size:10;not null" json:"narrativeId"`
	UserAnswer       string                      `gorm:"type:text" json:"userAnswer"`
	PredictedEmotion datatypes.JSONSlice[string] `json:"predictedEmotion"`
	IsCorrect        bool                        `gorm:"default:false;not null" json:"isCorrect"`
	Score            int                         `gorm:"default:0;not null" json:"score"`
	Feedback         string                      `gorm:"type:text" json:"feedback"`
	Repeatable       bool                        `gorm:"default:false;not null" json:"repeatable"`
	Flagged          bool                        `gorm:"default:false;not null" json:"flagged"`
	CreatedAt        time.Time                   `gorm:"index" json:"createdAt"`

	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Narrative Narrative `gorm:"foreignKey:NarrativeID" json:"-"`
}

func (Response) TableName() string {
	return "responses"
}
