package entity

import "time"

// CustomSection is a user-defined tracker, e.g. "System Design", holding CustomTopics.
type CustomSection struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Icon      string    `gorm:"size:64;not null" json:"icon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (CustomSection) TableName() string {
	return "custom_sections"
}

// CustomSectionInput is the create payload for a CustomSection.
type CustomSectionInput struct {
	Name string `json:"name" validate:"required,notblank"`
	Icon string `json:"icon" validate:"omitempty,notblank"`
}

// NewRecord builds the row to insert for ownerID.
func (in CustomSectionInput) NewRecord(ownerID uint) CustomSection {
	icon := in.Icon
	if icon == "" {
		icon = DefaultSectionIcon
	}
	return CustomSection{UserID: ownerID, Name: in.Name, Icon: icon}
}

// CustomSectionPatch is the partial update payload for a CustomSection.
type CustomSectionPatch struct {
	Name *string `json:"name" validate:"omitnil,notblank"`
	Icon *string `json:"icon" validate:"omitnil,notblank"`
}

// Changes returns the columns to update.
func (p CustomSectionPatch) Changes() map[string]any {
	out := map[string]any{}
	if p.Name != nil {
		out["name"] = *p.Name
	}
	if p.Icon != nil {
		out["icon"] = *p.Icon
	}
	return out
}

// CustomTopic is one item inside a CustomSection.
type CustomTopic struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	SectionID uint      `gorm:"index;not null" json:"section_id"`
	Topic     string    `gorm:"size:255;not null" json:"topic"`
	Status    Status    `gorm:"size:20;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (CustomTopic) TableName() string {
	return "custom_topics"
}

// CustomTopicInput is the create payload for a CustomTopic.
type CustomTopicInput struct {
	SectionID uint   `json:"section_id" validate:"required"`
	Topic     string `json:"topic" validate:"required,notblank"`
	Status    Status `json:"status" validate:"omitempty,oneof=not_started in_progress completed"`
}

// NewRecord builds the row to insert for ownerID.
func (in CustomTopicInput) NewRecord(ownerID uint) CustomTopic {
	return CustomTopic{
		UserID:    ownerID,
		SectionID: in.SectionID,
		Topic:     in.Topic,
		Status:    orDefault(in.Status, StatusNotStarted),
	}
}

// CustomTopicPatch is the partial update payload for a CustomTopic.
type CustomTopicPatch struct {
	SectionID *uint   `json:"section_id" validate:"omitnil,min=1"`
	Topic     *string `json:"topic" validate:"omitnil,notblank"`
	Status    *Status `json:"status" validate:"omitnil,oneof=not_started in_progress completed"`
}

// Changes returns the columns to update.
func (p CustomTopicPatch) Changes() map[string]any {
	out := map[string]any{}
	if p.SectionID != nil {
		out["section_id"] = *p.SectionID
	}
	if p.Topic != nil {
		out["topic"] = *p.Topic
	}
	if p.Status != nil {
		out["status"] = string(*p.Status)
	}
	return out
}
