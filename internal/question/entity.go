package question

import "gorm.io/datatypes"

type Subject struct {
	ID   string `gorm:"type:text;primaryKey" json:"id"`
	Name string `gorm:"type:text;not null" json:"name"`
}

func (Subject) TableName() string { return "subjects" }

type Topic struct {
	ID        string  `gorm:"type:text;primaryKey" json:"id"`
	Name      string  `gorm:"type:text;not null" json:"name"`
	Class     string  `gorm:"type:text;not null;index" json:"class"`
	SubjectID string  `gorm:"type:text;not null;index" json:"subject_id"`
	Genre     *string `gorm:"type:text" json:"genre,omitempty"`

	Subject Subject `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Topic) TableName() string { return "topics" }

type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is read-only content. Subject is filled from the owning topic.
type Question struct {
	ID              string                      `gorm:"type:text;primaryKey" json:"id"`
	TopicID         string                      `gorm:"type:text;not null;index" json:"topic_id"`
	Subject         string                      `gorm:"->;-:migration" json:"subject"`
	Text            string                      `gorm:"type:text;not null" json:"question_text"`
	Options         datatypes.JSONSlice[Option] `gorm:"not null" json:"options"`
	CorrectOptionID string                      `gorm:"type:text;not null" json:"correct_option_id"`
	Explanation     *string                     `gorm:"type:text" json:"explanation,omitempty"`
	Difficulty      int                         `gorm:"not null;default:0;index" json:"difficulty"`

	Topic Topic `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Question) TableName() string { return "questions" }

func IDs(questions []Question) []string {
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}
