package repository

import (
	"context"

	"gorm.io/gorm"

	"shoplist/internal/model"
)

// ItemRepository defines shopping list item persistence operations. Lookups
// here are by plain id; ownership is established by the caller resolving the
// parent list first.
type ItemRepository interface {
	Create(ctx context.Context, item *model.ShoppingListItem) error
	Update(ctx context.Context, item *model.ShoppingListItem) error
	FindByID(ctx context.Context, id uint) (*model.ShoppingListItem, error)
	ListByList(ctx context.Context, listID uint, offset, limit int) ([]model.ShoppingListItem, int64, error)
	Delete(ctx context.Context, item *model.ShoppingListItem) error
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository builds a GORM-backed repository.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.ShoppingListItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) Update(ctx context.Context, item *model.ShoppingListItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepository) FindByID(ctx context.Context, id uint) (*model.ShoppingListItem, error) {
	var item model.ShoppingListItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) ListByList(ctx context.Context, listID uint, offset, limit int) ([]model.ShoppingListItem, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.ShoppingListItem{}).
		Where("shopping_list_id = ?", listID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.ShoppingListItem
	if err := r.db.WithContext(ctx).
		Where("shopping_list_id = ?", listID).
		Order("id").
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *itemRepository) Delete(ctx context.Context, item *model.ShoppingListItem) error {
	return r.db.WithContext(ctx).Delete(item).Error
}
