package service

import (
	"context"

	"dukaledger/internal/dto"
	"dukaledger/internal/model"
	"dukaledger/internal/repository"

	"github.com/google/uuid"
)

// ItemService is the minimal item registry: the ledger needs item identity
// and a unit of measure, nothing richer. Full catalog management lives in the
// configuration frontend.
type ItemService interface {
	Create(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ItemResponse, error)
	List(ctx context.Context) ([]dto.ItemResponse, error)
}

type itemService struct {
	repo repository.ItemRepository
}

func NewItemService(repo repository.ItemRepository) ItemService {
	return &itemService{repo: repo}
}

func (s *itemService) Create(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error) {
	item := &model.Item{
		Name:   req.Name,
		Unit:   req.Unit,
		Active: true,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return itemToResponse(item), nil
}

func (s *itemService) Get(ctx context.Context, id uuid.UUID) (*dto.ItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return itemToResponse(item), nil
}

func (s *itemService) List(ctx context.Context) ([]dto.ItemResponse, error) {
	items, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *itemToResponse(&items[i]))
	}
	return out, nil
}

func itemToResponse(i *model.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:        i.ID.String(),
		Name:      i.Name,
		Unit:      i.Unit,
		Active:    i.Active,
		CreatedAt: i.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
