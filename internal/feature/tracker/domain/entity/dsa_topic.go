package entity

import "time"

// DSATopic is a data structures and algorithms topic the user is working through.
type DSATopic struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Topic     string    `gorm:"size:255;not null" json:"topic"`
	Category  string    `gorm:"size:255;not null" json:"category"`
	Status    Status    `gorm:"size:20;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (DSATopic) TableName() string {
	return "dsa_topics"
}

// DSATopicInput is the create payload for a DSATopic.
type DSATopicInput struct {
	Topic    string `json:"topic" validate:"required,notblank"`
	Category string `json:"category" validate:"required,notblank"`
	Status   Status `json:"status" validate:"omitempty,oneof=not_started in_progress completed"`
}

// NewRecord builds the row to insert for ownerID.
func (in DSATopicInput) NewRecord(ownerID uint) DSATopic {
	return DSATopic{
		UserID:   ownerID,
		Topic:    in.Topic,
		Category: in.Category,
		Status:   orDefault(in.Status, StatusNotStarted),
	}
}

// DSATopicPatch is the partial update payload for a DSATopic. Nil fields are left alone.
type DSATopicPatch struct {
	Topic    *string `json:"topic" validate:"omitnil,notblank"`
	Category *string `json:"category" validate:"omitnil,notblank"`
	Status   *Status `json:"status" validate:"omitnil,oneof=not_started in_progress completed"`
}

// Changes returns the columns to update.
func (p DSATopicPatch) Changes() map[string]any {
	out := map[string]any{}
	if p.Topic != nil {
		out["topic"] = *p.Topic
	}
	if p.Category != nil {
		out["category"] = *p.Category
	}
	if p.Status != nil {
		out["status"] = string(*p.Status)
	}
	return out
}
