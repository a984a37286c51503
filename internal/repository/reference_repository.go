package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/siteworks/internal/model"
)

type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) GetWork(ctx context.Context, id uuid.UUID) (*model.Work, error) {
	var work model.Work
	err := r.db.WithContext(ctx).
		Where("id = ? AND NOT is_deleted", id).
		First(&work).Error
	if err != nil {
		return nil, err
	}
	return &work, nil
}

func (r *ReferenceRepository) GetPerson(ctx context.Context, id uuid.UUID) (*model.Person, error) {
	var person model.Person
	err := r.db.WithContext(ctx).
		Where("id = ? AND NOT is_deleted", id).
		First(&person).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *ReferenceRepository) GetSiteObject(ctx context.Context, id uuid.UUID) (*model.SiteObject, error) {
	var object model.SiteObject
	err := r.db.WithContext(ctx).
		Where("id = ? AND NOT is_deleted", id).
		First(&object).Error
	if err != nil {
		return nil, err
	}
	return &object, nil
}

func (r *ReferenceRepository) GetOrganization(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}
