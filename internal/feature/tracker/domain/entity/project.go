package entity

import "time"

// Project is a side project the user can talk about in interviews.
type Project struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"index;not null" json:"user_id"`
	Name             string    `gorm:"size:255;not null" json:"name"`
	TechStack        string    `gorm:"size:255;not null" json:"tech_stack"`
	Status           Status    `gorm:"size:20;not null" json:"status"`
	IsInterviewReady bool      `gorm:"not null" json:"is_interview_ready"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Project) TableName() string {
	return "projects"
}

// ProjectInput is the create payload for a Project.
type ProjectInput struct {
	Name             string `json:"name" validate:"required,notblank"`
	TechStack        string `json:"tech_stack" validate:"required,notblank"`
	Status           Status `json:"status" validate:"omitempty,oneof=planned in_progress completed"`
	IsInterviewReady bool   `json:"is_interview_ready"`
}

// NewRecord builds the row to insert for ownerID.
func (in ProjectInput) NewRecord(ownerID uint) Project {
	return Project{
		UserID:           ownerID,
		Name:             in.Name,
		TechStack:        in.TechStack,
		Status:           orDefault(in.Status, ProjectPlanned),
		IsInterviewReady: in.IsInterviewReady,
	}
}

// ProjectPatch is the partial update payload for a Project.
type ProjectPatch struct {
	Name             *string `json:"name" validate:"omitnil,notblank"`
	TechStack        *string `json:"tech_stack" validate:"omitnil,notblank"`
	Status           *Status `json:"status" validate:"omitnil,oneof=planned in_progress completed"`
	IsInterviewReady *bool   `json:"is_interview_ready"`
}

// Changes returns the columns to update.
func (p ProjectPatch) Changes() map[string]any {
	out := map[string]any{}
	if p.Name != nil {
		out["name"] = *p.Name
	}
	if p.TechStack != nil {
		out["tech_stack"] = *p.TechStack
	}
	if p.Status != nil {
		out["status"] = string(*p.Status)
	}
	if p.IsInterviewReady != nil {
		out["is_interview_ready"] = *p.IsInterviewReady
	}
	return out
}
