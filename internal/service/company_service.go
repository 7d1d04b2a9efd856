package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dukaledger/internal/dto"
	"dukaledger/internal/model"
	"dukaledger/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	companyCacheKey = "company:profile"
	companyCacheTTL = time.Hour
)

// CompanyService exposes the business identity used on report headers.
// The profile is cached in redis and refreshed through an explicit
// Invalidate — there is no package-level singleton to go stale.
type CompanyService interface {
	Get(ctx context.Context) (*dto.CompanyResponse, error)
	Update(ctx context.Context, req dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
	Invalidate(ctx context.Context) error
}

type companyService struct {
	repo repository.CompanyRepository
	rdb  *redis.Client
}

// NewCompanyService accepts a nil redis client (unit test mode — cache off).
func NewCompanyService(repo repository.CompanyRepository, rdb *redis.Client) CompanyService {
	return &companyService{repo: repo, rdb: rdb}
}

func (s *companyService) Get(ctx context.Context) (*dto.CompanyResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, companyCacheKey).Result(); err == nil {
			var resp dto.CompanyResponse
			if err := json.Unmarshal([]byte(raw), &resp); err == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.repo.Get(ctx)
	if errors.Is(err, model.ErrNotFound) {
		// Fresh install: no profile row yet. Return an unnamed default rather
		// than an error so reports still render.
		return &dto.CompanyResponse{Currency: "KES"}, nil
	}
	if err != nil {
		return nil, err
	}

	resp := profileToResponse(p)
	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, companyCacheKey, raw, companyCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("company profile cache set failed")
			}
		}
	}
	return resp, nil
}

func (s *companyService) Update(ctx context.Context, req dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	p, err := s.repo.Get(ctx)
	if errors.Is(err, model.ErrNotFound) {
		p = &model.CompanyProfile{}
	} else if err != nil {
		return nil, err
	}

	p.Name = req.Name
	p.Address = req.Address
	p.Phone = req.Phone
	p.Email = req.Email
	p.Currency = req.Currency
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	if err := s.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("company profile cache invalidation failed")
	}
	return profileToResponse(p), nil
}

func (s *companyService) Invalidate(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, companyCacheKey).Err()
}

func profileToResponse(p *model.CompanyProfile) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		Name:     p.Name,
		Address:  p.Address,
		Phone:    p.Phone,
		Email:    p.Email,
		Currency: p.Currency,
	}
}
