package repository

import (
	"context"
	"errors"

	"dukaledger/internal/model"

	"gorm.io/gorm"
)

type CompanyRepository interface {
	Get(ctx context.Context) (*model.CompanyProfile, error)
	Save(ctx context.Context, p *model.CompanyProfile) error
}

type companyRepo struct{ db *gorm.DB }

func NewCompanyRepository(db *gorm.DB) CompanyRepository { return &companyRepo{db: db} }

func (r *companyRepo) Get(ctx context.Context) (*model.CompanyProfile, error) {
	var p model.CompanyProfile
	err := r.db.WithContext(ctx).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	return &p, err
}

func (r *companyRepo) Save(ctx context.Context, p *model.CompanyProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}
