package entity

import (
	"time"

	"prep_tracker/internal/shared/scoped"
)

// DailyLog is a study journal entry for one calendar day.
// Date is kept as YYYY-MM-DD text so ordering and streak math never depend on a time zone.
type DailyLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	Date       string    `gorm:"size:10;index;not null" json:"date"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	HoursSpent int       `gorm:"not null" json:"hours_spent"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (DailyLog) TableName() string {
	return "daily_logs"
}

// DailyLogInput is the create payload for a DailyLog. An empty Date means today.
type DailyLogInput struct {
	Date       string `json:"date" validate:"omitempty,caldate"`
	Content    string `json:"content" validate:"required,notblank"`
	HoursSpent *int   `json:"hours_spent" validate:"required,min=0"`
}

// NewRecord builds the row to insert for ownerID. The payload must already be validated.
func (in DailyLogInput) NewRecord(ownerID uint) DailyLog {
	date := time.Now().Format(scoped.DateLayout)
	if in.Date != "" {
		date, _ = scoped.ParseCalendarDate(in.Date)
	}
	var hours int
	if in.HoursSpent != nil {
		hours = *in.HoursSpent
	}
	return DailyLog{
		UserID:     ownerID,
		Date:       date,
		Content:    in.Content,
		HoursSpent: hours,
	}
}

// DailyLogPatch is the partial update payload for a DailyLog.
type DailyLogPatch struct {
	Date       *string `json:"date" validate:"omitnil,caldate"`
	Content    *string `json:"content" validate:"omitnil,notblank"`
	HoursSpent *int    `json:"hours_spent" validate:"omitnil,min=0"`
}

// Changes returns the columns to update.
func (p DailyLogPatch) Changes() map[string]any {
	out := map[string]any{}
	if p.Date != nil {
		date, _ := scoped.ParseCalendarDate(*p.Date)
		out["date"] = date
	}
	if p.Content != nil {
		out["content"] = *p.Content
	}
	if p.HoursSpent != nil {
		out["hours_spent"] = *p.HoursSpent
	}
	return out
}
