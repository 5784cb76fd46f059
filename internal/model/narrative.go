package model

import "gorm.io/datatypes"

// Narrative 故事内容，引擎只读
type Narrative struct {
	ID            string                      `gorm:"primaryKey;size:10" json:"id"`
	Title         string                      `gorm:"size:200;not null" json:"title"`
	Content       string                      `gorm:"type:text;not null" json:"content"`
	ImagePath     string                      `gorm:"size:255" json:"imagePath"`
	EmotionLabels datatypes.JSONSlice[string] `json:"emotionLabels"`
	Segment       Segment                     `gorm:"index;not null" json:"segment"`
}

func (Narrative) TableName() string {
	return "narratives"
}
