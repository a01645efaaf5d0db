package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"shoplist/internal/model"
)

// ListRepository defines shopping list persistence operations. Every read
// that takes an ownerID filters on it at the query level, so a list owned by
// someone else surfaces as gorm.ErrRecordNotFound, indistinguishable from a
// list that does not exist.
type ListRepository interface {
	Create(ctx context.Context, list *model.ShoppingList) error
	Update(ctx context.Context, list *model.ShoppingList) error
	FindOwned(ctx context.Context, ownerID, listID uint) (*model.ShoppingList, error)
	ListByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]model.ShoppingList, int64, error)
	SearchByName(ctx context.Context, ownerID uint, term string, offset, limit int) ([]model.ShoppingList, int64, error)
	DeleteWithItems(ctx context.Context, list *model.ShoppingList) error
}

type listRepository struct {
	db *gorm.DB
}

// NewListRepository builds a GORM-backed repository.
func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) Create(ctx context.Context, list *model.ShoppingList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *listRepository) Update(ctx context.Context, list *model.ShoppingList) error {
	return r.db.WithContext(ctx).Save(list).Error
}

func (r *listRepository) FindOwned(ctx context.Context, ownerID, listID uint) (*model.ShoppingList, error) {
	var list model.ShoppingList
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", listID, ownerID).
		First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *listRepository) ListByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]model.ShoppingList, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.ShoppingList{}).
		Where("user_id = ?", ownerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var lists []model.ShoppingList
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id").
		Offset(offset).Limit(limit).
		Find(&lists).Error; err != nil {
		return nil, 0, err
	}
	return lists, total, nil
}

// SearchByName performs an owner-scoped case-insensitive substring match on
// the list name.
func (r *listRepository) SearchByName(ctx context.Context, ownerID uint, term string, offset, limit int) ([]model.ShoppingList, int64, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	query := r.db.WithContext(ctx).Model(&model.ShoppingList{}).
		Where("user_id = ? AND LOWER(name) LIKE ?", ownerID, pattern)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var lists []model.ShoppingList
	if err := query.
		Order("id").
		Offset(offset).Limit(limit).
		Find(&lists).Error; err != nil {
		return nil, 0, err
	}
	return lists, total, nil
}

// DeleteWithItems removes a list and all of its items in one transaction:
// either everything goes or nothing does.
func (r *listRepository) DeleteWithItems(ctx context.Context, list *model.ShoppingList) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shopping_list_id = ?", list.ID).
			Delete(&model.ShoppingListItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(list).Error
	})
}
