package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"prep_tracker/internal/feature/tracker/domain/entity"
	"prep_tracker/internal/shared/scoped"
)

type baseSectionStore = scoped.GormStore[entity.CustomSection, entity.CustomSectionInput, entity.CustomSectionPatch]

type baseTopicStore = scoped.GormStore[entity.CustomTopic, entity.CustomTopicInput, entity.CustomTopicPatch]

// CustomSectionStore stores custom sections. Deleting a section also deletes its topics.
type CustomSectionStore struct {
	*baseSectionStore
}

var _ scoped.Store[entity.CustomSection, entity.CustomSectionInput, entity.CustomSectionPatch] = (*CustomSectionStore)(nil)

// NewCustomSectionStore creates a CustomSectionStore.
func NewCustomSectionStore(db *gorm.DB) *CustomSectionStore {
	return &CustomSectionStore{
		baseSectionStore: scoped.NewGormStore[entity.CustomSection, entity.CustomSectionInput, entity.CustomSectionPatch](db),
	}
}

// Delete removes the section and its topics when ownerID owns it.
func (s *CustomSectionStore) Delete(ctx context.Context, id, ownerID uint) error {
	return s.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND "+scoped.OwnerColumn+" = ?", id, ownerID).Delete(&entity.CustomSection{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Where("section_id = ? AND "+scoped.OwnerColumn+" = ?", id, ownerID).Delete(&entity.CustomTopic{}).Error
	})
}

// CustomTopicStore stores custom topics. A topic may only point at a section owned by the same user.
type CustomTopicStore struct {
	*baseTopicStore
}

var _ scoped.Store[entity.CustomTopic, entity.CustomTopicInput, entity.CustomTopicPatch] = (*CustomTopicStore)(nil)

// NewCustomTopicStore creates a CustomTopicStore.
func NewCustomTopicStore(db *gorm.DB) *CustomTopicStore {
	return &CustomTopicStore{
		baseTopicStore: scoped.NewGormStore[entity.CustomTopic, entity.CustomTopicInput, entity.CustomTopicPatch](db),
	}
}

// ListBySection returns ownerID's topics in the given section, oldest first.
func (s *CustomTopicStore) ListBySection(ctx context.Context, sectionID, ownerID uint) ([]entity.CustomTopic, error) {
	topics := []entity.CustomTopic{}
	if err := s.DB().WithContext(ctx).
		Where("section_id = ? AND "+scoped.OwnerColumn+" = ?", sectionID, ownerID).
		Order("id ASC").
		Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

// Create inserts a topic. It returns scoped.ErrNotFound when the section is not owned by ownerID.
func (s *CustomTopicStore) Create(ctx context.Context, ownerID uint, in entity.CustomTopicInput) (entity.CustomTopic, error) {
	if err := scoped.Validate(in); err != nil {
		return entity.CustomTopic{}, err
	}

	var out entity.CustomTopic
	err := s.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureSection(tx, in.SectionID, ownerID); err != nil {
			return err
		}
		created, err := scoped.NewGormStore[entity.CustomTopic, entity.CustomTopicInput, entity.CustomTopicPatch](tx).
			Create(ctx, ownerID, in)
		out = created
		return err
	})
	return out, err
}

// Update patches a topic. Moving it to a section ownerID does not own returns scoped.ErrNotFound.
func (s *CustomTopicStore) Update(ctx context.Context, id, ownerID uint, patch entity.CustomTopicPatch) (entity.CustomTopic, error) {
	if patch.SectionID == nil {
		return s.baseTopicStore.Update(ctx, id, ownerID, patch)
	}
	if err := scoped.Validate(patch); err != nil {
		return entity.CustomTopic{}, err
	}

	var out entity.CustomTopic
	err := s.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureSection(tx, *patch.SectionID, ownerID); err != nil {
			return err
		}
		updated, err := scoped.NewGormStore[entity.CustomTopic, entity.CustomTopicInput, entity.CustomTopicPatch](tx).
			Update(ctx, id, ownerID, patch)
		out = updated
		return err
	})
	return out, err
}

func ensureSection(tx *gorm.DB, sectionID, ownerID uint) error {
	var section entity.CustomSection
	err := tx.Select("id").
		Where("id = ? AND "+scoped.OwnerColumn+" = ?", sectionID, ownerID).
		First(&section).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return scoped.ErrNotFound
	}
	return err
}
