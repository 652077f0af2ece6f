// Package adapters provides the GORM-backed stores for the tracker feature.
package adapters

import (
	"gorm.io/gorm"

	"prep_tracker/internal/feature/tracker/domain/entity"
	"prep_tracker/internal/shared/scoped"
)

// newestFirst orders dated records with the most recent first; id breaks ties.
var newestFirst = scoped.WithOrder("date DESC, id DESC")

type (
	// DSATopicStore is the owner-scoped store of DSA topics.
	DSATopicStore = scoped.GormStore[entity.DSATopic, entity.DSATopicInput, entity.DSATopicPatch]
	// CSTopicStore is the owner-scoped store of CS topics.
	CSTopicStore = scoped.GormStore[entity.CSTopic, entity.CSTopicInput, entity.CSTopicPatch]
	// ProjectStore is the owner-scoped store of projects.
	ProjectStore = scoped.GormStore[entity.Project, entity.ProjectInput, entity.ProjectPatch]
	// MockInterviewStore is the owner-scoped store of mock interviews.
	MockInterviewStore = scoped.GormStore[entity.MockInterview, entity.MockInterviewInput, entity.MockInterviewPatch]
	// DailyLogStore is the owner-scoped store of daily logs.
	DailyLogStore = scoped.GormStore[entity.DailyLog, entity.DailyLogInput, entity.DailyLogPatch]
)

// NewDSATopicStore creates the DSA topic store.
func NewDSATopicStore(db *gorm.DB) *DSATopicStore {
	return scoped.NewGormStore[entity.DSATopic, entity.DSATopicInput, entity.DSATopicPatch](db)
}

// NewCSTopicStore creates the CS topic store.
func NewCSTopicStore(db *gorm.DB) *CSTopicStore {
	return scoped.NewGormStore[entity.CSTopic, entity.CSTopicInput, entity.CSTopicPatch](db)
}

// NewProjectStore creates the project store.
func NewProjectStore(db *gorm.DB) *ProjectStore {
	return scoped.NewGormStore[entity.Project, entity.ProjectInput, entity.ProjectPatch](db)
}

// NewMockInterviewStore creates the mock interview store. Lists are newest first.
func NewMockInterviewStore(db *gorm.DB) *MockInterviewStore {
	return scoped.NewGormStore[entity.MockInterview, entity.MockInterviewInput, entity.MockInterviewPatch](db, newestFirst)
}

// NewDailyLogStore creates the daily log store. Lists are newest first.
func NewDailyLogStore(db *gorm.DB) *DailyLogStore {
	return scoped.NewGormStore[entity.DailyLog, entity.DailyLogInput, entity.DailyLogPatch](db, newestFirst)
}

// Models lists every table owned by the tracker feature, for AutoMigrate.
func Models() []any {
	return []any{
		&entity.DSATopic{},
		&entity.CSTopic{},
		&entity.Project{},
		&entity.MockInterview{},
		&entity.DailyLog{},
		&entity.CustomSection{},
		&entity.CustomTopic{},
	}
}
