package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	trackeradapters "prep_tracker/internal/feature/tracker/adapters"
	"prep_tracker/internal/feature/tracker/domain/entity"
	"prep_tracker/internal/platform/cache"
	"prep_tracker/internal/shared/scoped"
)

// Stores holds one store per tracked resource.
type Stores struct {
	DSA      scoped.Store[entity.DSATopic, entity.DSATopicInput, entity.DSATopicPatch]
	CS       scoped.Store[entity.CSTopic, entity.CSTopicInput, entity.CSTopicPatch]
	Projects scoped.Store[entity.Project, entity.ProjectInput, entity.ProjectPatch]
	Mocks    scoped.Store[entity.MockInterview, entity.MockInterviewInput, entity.MockInterviewPatch]
	Logs     scoped.Store[entity.DailyLog, entity.DailyLogInput, entity.DailyLogPatch]
	Sections scoped.Store[entity.CustomSection, entity.CustomSectionInput, entity.CustomSectionPatch]
	// Topics are listed per section and are not cached.
	Topics *trackeradapters.CustomTopicStore
}

// NewStores creates the GORM stores, wrapping each list in the Redis cache when rdb is not nil.
func NewStores(db *gorm.DB, rdb *redis.Client, ttl time.Duration) Stores {
	s := Stores{
		DSA:      trackeradapters.NewDSATopicStore(db),
		CS:       trackeradapters.NewCSTopicStore(db),
		Projects: trackeradapters.NewProjectStore(db),
		Mocks:    trackeradapters.NewMockInterviewStore(db),
		Logs:     trackeradapters.NewDailyLogStore(db),
		Sections: trackeradapters.NewCustomSectionStore(db),
		Topics:   trackeradapters.NewCustomTopicStore(db),
	}
	if rdb == nil {
		return s
	}

	s.DSA = cache.NewCachingStore(rdb, ttl, s.DSA, "dsa")
	s.CS = cache.NewCachingStore(rdb, ttl, s.CS, "cs")
	s.Projects = cache.NewCachingStore(rdb, ttl, s.Projects, "projects")
	s.Mocks = cache.NewCachingStore(rdb, ttl, s.Mocks, "mocks")
	s.Logs = cache.NewCachingStore(rdb, ttl, s.Logs, "logs")
	s.Sections = cache.NewCachingStore(rdb, ttl, s.Sections, "sections")
	return s
}
