package entity

import "time"

// CSTopic is a computer science fundamentals topic, grouped by subject (OS, DBMS, ...).
type CSTopic struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Subject   string    `gorm:"size:255;not null" json:"subject"`
	Topic     string    `gorm:"size:255;not null" json:"topic"`
	Status    Status    `gorm:"size:20;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (CSTopic) TableName() string {
	return "cs_topics"
}

// CSTopicInput is the create payload for a CSTopic.
type CSTopicInput struct {
	Subject string `json:"subject" validate:"required,notblank"`
	Topic   string `json:"topic" validate:"required,notblank"`
	Status  Status `json:"status" validate:"omitempty,oneof=not_started in_progress completed"`
}

// NewRecord builds the row to insert for ownerID.
func (in CSTopicInput) NewRecord(ownerID uint) CSTopic {
	return CSTopic{
		UserID:  ownerID,
		Subject: in.Subject,
		Topic:   in.Topic,
		Status:  orDefault(in.Status, StatusNotStarted),
	}
}

// CSTopicPatch is the partial update payload for a CSTopic.
type CSTopicPatch struct {
	Subject *string `json:"subject" validate:"omitnil,notblank"`
	Topic   *string `json:"topic" validate:"omitnil,notblank"`
	Status  *Status `json:"status" validate:"omitnil,oneof=not_started in_progress completed"`
}

// Changes returns the columns to update.
func (p CSTopicPatch) Changes() map[string]any {
	out := map[string]any{}
	if p.Subject != nil {
		out["subject"] = *p.Subject
	}
	if p.Topic != nil {
		out["topic"] = *p.Topic
	}
	if p.Status != nil {
		out["status"] = string(*p.Status)
	}
	return out
}
