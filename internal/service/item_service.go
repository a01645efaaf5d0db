package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "shoplist/internal/errors"
	"shoplist/internal/model"
	"shoplist/internal/repository"
	"shoplist/internal/util"
)

// ItemService manages items nested inside a shopping list. Every operation
// resolves the parent list through the owner filter first and then checks
// that the item actually hangs off that list, so a guessed item id can never
// reach another user's data.
type ItemService interface {
	ListItems(ctx context.Context, ownerID, listID uint, page, limit int) ([]model.ShoppingListItem, util.Meta, error)
	CreateItem(ctx context.Context, ownerID, listID uint, name, description string) (*model.ShoppingListItem, error)
	UpdateItem(ctx context.Context, ownerID, listID, itemID uint, name, description string) (*model.ShoppingListItem, error)
	DeleteItem(ctx context.Context, ownerID, listID, itemID uint) error
}

type itemService struct {
	lists repository.ListRepository
	items repository.ItemRepository
}

// NewItemService builds an ItemService.
func NewItemService(lists repository.ListRepository, items repository.ItemRepository) ItemService {
	return &itemService{lists: lists, items: items}
}

// resolveList maps a missing or foreign list onto ErrListNotFound.
func (s *itemService) resolveList(ctx context.Context, ownerID, listID uint) (*model.ShoppingList, error) {
	list, err := s.lists.FindOwned(ctx, ownerID, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListNotFound
		}
		return nil, fmt.Errorf("find list: %w", err)
	}
	return list, nil
}

// resolveItem fetches an item and confirms it belongs to the already-owned
// parent list. An item of a different list is reported as not found.
func (s *itemService) resolveItem(ctx context.Context, list *model.ShoppingList, itemID uint) (*model.ShoppingListItem, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	if item.ShoppingListID != list.ID {
		return nil, apperrors.ErrItemNotFound
	}
	return item, nil
}

func (s *itemService) ListItems(ctx context.Context, ownerID, listID uint, page, limit int) ([]model.ShoppingListItem, util.Meta, error) {
	list, err := s.resolveList(ctx, ownerID, listID)
	if err != nil {
		return nil, util.Meta{}, err
	}

	offset, size := util.Page(page, limit)
	items, total, err := s.items.ListByList(ctx, list.ID, offset, size)
	if err != nil {
		return nil, util.Meta{}, fmt.Errorf("list items: %w", err)
	}
	return items, util.NewMeta(total, offset/size+1, size), nil
}

func (s *itemService) CreateItem(ctx context.Context, ownerID, listID uint, name, description string) (*model.ShoppingListItem, error) {
	list, err := s.resolveList(ctx, ownerID, listID)
	if err != nil {
		return nil, err
	}

	name, err = verifyListName(name)
	if err != nil {
		return nil, err
	}

	item := &model.ShoppingListItem{
		Name:           name,
		Description:    strings.TrimSpace(description),
		ShoppingListID: list.ID,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

func (s *itemService) UpdateItem(ctx context.Context, ownerID, listID, itemID uint, name, description string) (*model.ShoppingListItem, error) {
	list, err := s.resolveList(ctx, ownerID, listID)
	if err != nil {
		return nil, err
	}
	item, err := s.resolveItem(ctx, list, itemID)
	if err != nil {
		return nil, err
	}

	name, err = verifyListName(name)
	if err != nil {
		return nil, err
	}

	item.Name = name
	if description = strings.TrimSpace(description); description != "" {
		item.Description = description
	}
	if err := s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

func (s *itemService) DeleteItem(ctx context.Context, ownerID, listID, itemID uint) error {
	list, err := s.resolveList(ctx, ownerID, listID)
	if err != nil {
		return err
	}
	item, err := s.resolveItem(ctx, list, itemID)
	if err != nil {
		return err
	}

	if err := s.items.Delete(ctx, item); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
