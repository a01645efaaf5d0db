package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"shoplist/internal/cache"
	apperrors "shoplist/internal/errors"
	"shoplist/internal/model"
	"shoplist/internal/repository"
	"shoplist/internal/util"
)

const listCacheTTL = 5 * time.Minute

const minListNameLength = 2

// ListService exposes shopping list operations, all scoped to the owner.
// A list belonging to another user is reported as not found, never as
// forbidden, so callers cannot probe for the existence of foreign lists.
type ListService interface {
	CreateList(ctx context.Context, ownerID uint, name, description string) (*model.ShoppingList, error)
	GetList(ctx context.Context, ownerID, listID uint) (*model.ShoppingList, error)
	ListLists(ctx context.Context, ownerID uint, page, limit int) ([]model.ShoppingList, util.Meta, error)
	UpdateList(ctx context.Context, ownerID, listID uint, name, description string) (*model.ShoppingList, error)
	DeleteList(ctx context.Context, ownerID, listID uint) error
	Search(ctx context.Context, ownerID uint, term string, page, limit int) ([]model.ShoppingList, util.Meta, error)
}

type listService struct {
	lists repository.ListRepository
	cache *cache.Client
}

// NewListService builds a ListService with repository and cache.
func NewListService(lists repository.ListRepository, cache *cache.Client) ListService {
	return &listService{lists: lists, cache: cache}
}

func (s *listService) cacheKey(ownerID, listID uint) string {
	return fmt.Sprintf("list:%d:%d", ownerID, listID)
}

// verifyListName trims and validates a list name the way every iteration of
// this API has: at least two characters after trimming.
func verifyListName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if len(name) < minListNameLength {
		return "", apperrors.NewValidationError(fmt.Sprintf("Name cannot be less than %d characters", minListNameLength))
	}
	return name, nil
}

func (s *listService) CreateList(ctx context.Context, ownerID uint, name, description string) (*model.ShoppingList, error) {
	name, err := verifyListName(name)
	if err != nil {
		return nil, err
	}

	list := &model.ShoppingList{
		Name:        name,
		Description: strings.TrimSpace(description),
		UserID:      ownerID,
	}
	if err := s.lists.Create(ctx, list); err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}
	return list, nil
}

func (s *listService) GetList(ctx context.Context, ownerID, listID uint) (*model.ShoppingList, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(ownerID, listID)); data != nil {
		var cached model.ShoppingList
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	list, err := s.lists.FindOwned(ctx, ownerID, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListNotFound
		}
		return nil, fmt.Errorf("find list: %w", err)
	}

	if payload, err := json.Marshal(list); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(ownerID, listID), payload, listCacheTTL)
	}
	return list, nil
}

func (s *listService) ListLists(ctx context.Context, ownerID uint, page, limit int) ([]model.ShoppingList, util.Meta, error) {
	offset, size := util.Page(page, limit)
	lists, total, err := s.lists.ListByOwner(ctx, ownerID, offset, size)
	if err != nil {
		return nil, util.Meta{}, fmt.Errorf("list lists: %w", err)
	}
	return lists, util.NewMeta(total, offset/size+1, size), nil
}

func (s *listService) UpdateList(ctx context.Context, ownerID, listID uint, name, description string) (*model.ShoppingList, error) {
	name, err := verifyListName(name)
	if err != nil {
		return nil, err
	}

	list, err := s.lists.FindOwned(ctx, ownerID, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListNotFound
		}
		return nil, fmt.Errorf("find list: %w", err)
	}

	list.Name = name
	if description = strings.TrimSpace(description); description != "" {
		list.Description = description
	}
	if err := s.lists.Update(ctx, list); err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(ownerID, listID))
	return list, nil
}

// DeleteList removes the list and all its items atomically.
func (s *listService) DeleteList(ctx context.Context, ownerID, listID uint) error {
	list, err := s.lists.FindOwned(ctx, ownerID, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrListNotFound
		}
		return fmt.Errorf("find list: %w", err)
	}

	if err := s.lists.DeleteWithItems(ctx, list); err != nil {
		return fmt.Errorf("delete list: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(ownerID, listID))
	return nil
}

func (s *listService) Search(ctx context.Context, ownerID uint, term string, page, limit int) ([]model.ShoppingList, util.Meta, error) {
	offset, size := util.Page(page, limit)
	lists, total, err := s.lists.SearchByName(ctx, ownerID, strings.TrimSpace(term), offset, size)
	if err != nil {
		return nil, util.Meta{}, fmt.Errorf("search lists: %w", err)
	}
	return lists, util.NewMeta(total, offset/size+1, size), nil
}
