package entity

import "time"

// MockInterview records one practice interview and how the user rated it.
type MockInterview struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	Date          time.Time `gorm:"index;not null" json:"date"`
	TopicsCovered string    `gorm:"size:255;not null" json:"topics_covered"`
	SelfRating    int       `gorm:"not null" json:"self_rating"`
	Feedback      *string   `gorm:"type:text" json:"feedback"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (MockInterview) TableName() string {
	return "mock_interviews"
}

// MockInterviewInput is the create payload for a MockInterview. Date must be an RFC 3339 timestamp.
type MockInterviewInput struct {
	Date          string  `json:"date" validate:"required,timestamp"`
	TopicsCovered string  `json:"topics_covered" validate:"required,notblank"`
	SelfRating    int     `json:"self_rating" validate:"required,min=1,max=10"`
	Feedback      *string `json:"feedback"`
}

// NewRecord builds the row to insert for ownerID. The payload must already be validated.
func (in MockInterviewInput) NewRecord(ownerID uint) MockInterview {
	date, _ := time.Parse(time.RFC3339, in.Date)
	return MockInterview{
		UserID:        ownerID,
		Date:          date.UTC(),
		TopicsCovered: in.TopicsCovered,
		SelfRating:    in.SelfRating,
		Feedback:      in.Feedback,
	}
}

// MockInterviewPatch is the partial update payload for a MockInterview.
type MockInterviewPatch struct {
	Date          *string `json:"date" validate:"omitnil,timestamp"`
	TopicsCovered *string `json:"topics_covered" validate:"omitnil,notblank"`
	SelfRating    *int    `json:"self_rating" validate:"omitnil,min=1,max=10"`
	Feedback      *string `json:"feedback"`
}

// Changes returns the columns to update.
func (p MockInterviewPatch) Changes() map[string]any {
	out := map[string]any{}
	if p.Date != nil {
		date, _ := time.Parse(time.RFC3339, *p.Date)
		out["date"] = date.UTC()
	}
	if p.TopicsCovered != nil {
		out["topics_covered"] = *p.TopicsCovered
	}
	if p.SelfRating != nil {
		out["self_rating"] = *p.SelfRating
	}
	if p.Feedback != nil {
		out["feedback"] = *p.Feedback
	}
	return out
}
