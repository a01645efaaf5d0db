package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "shoplist/internal/errors"
	"shoplist/internal/model"
)

// MockItemRepository is a mock implementation of ItemRepository.
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *model.ShoppingListItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, item *model.ShoppingListItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uint) (*model.ShoppingListItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShoppingListItem), args.Error(1)
}

func (m *MockItemRepository) ListByList(ctx context.Context, listID uint, offset, limit int) ([]model.ShoppingListItem, int64, error) {
	args := m.Called(ctx, listID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.ShoppingListItem), args.Get(1).(int64), args.Error(2)
}

func (m *MockItemRepository) Delete(ctx context.Context, item *model.ShoppingListItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func ownedList(listID, ownerID uint) *model.ShoppingList {
	return &model.ShoppingList{ID: listID, Name: "Groceries", UserID: ownerID}
}

func TestItemService_CreateItem(t *testing.T) {
	t.Run("creates under an owned list", func(t *testing.T) {
		mockLists := new(MockListRepository)
		mockItems := new(MockItemRepository)
		mockLists.On("FindOwned", mock.Anything, uint(1), uint(10)).Return(ownedList(10, 1), nil)
		mockItems.On("Create", mock.Anything, mock.AnythingOfType("*model.ShoppingListItem")).Return(nil)

		service := NewItemService(mockLists, mockItems)
		item, err := service.CreateItem(context.Background(), 1, 10, "Milk", "")

		assert.NoError(t, err)
		assert.Equal(t, "Milk", item.Name)
		assert.Equal(t, uint(10), item.ShoppingListID)
		mockItems.AssertExpectations(t)
	})

	t.Run("foreign parent list blocks the create", func(t *testing.T) {
		mockLists := new(MockListRepository)
		mockItems := new(MockItemRepository)
		mockLists.On("FindOwned", mock.Anything, uint(2), uint(10)).Return(nil, gorm.ErrRecordNotFound)

		service := NewItemService(mockLists, mockItems)
		item, err := service.CreateItem(context.Background(), 2, 10, "Milk", "")

		assert.ErrorIs(t, err, apperrors.ErrListNotFound)
		assert.Nil(t, item)
		mockItems.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("item name too short", func(t *testing.T) {
		mockLists := new(MockListRepository)
		mockItems := new(MockItemRepository)
		mockLists.On("FindOwned", mock.Anything, uint(1), uint(10)).Return(ownedList(10, 1), nil)

		service := NewItemService(mockLists, mockItems)
		item, err := service.CreateItem(context.Background(), 1, 10, "x", "")

		var verr *apperrors.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Nil(t, item)
	})
}

func TestItemService_UpdateItem(t *testing.T) {
	t.Run("updates an item of the owned list", func(t *testing.T) {
		mockLists := new(MockListRepository)
		mockItems := new(MockItemRepository)
		mockLists.On("FindOwned", mock.Anything, uint(1), uint(10)).Return(ownedList(10, 1), nil)
		mockItems.On("FindByID", mock.Anything, uint(100)).Return(&model.ShoppingListItem{ID: 100, Name: "Milk", ShoppingListID: 10}, nil)
		mockItems.On("Update", mock.Anything, mock.AnythingOfType("*model.ShoppingListItem")).Return(nil)

		service := NewItemService(mockLists, mockItems)
		item, err := service.UpdateItem(context.Background(), 1, 10, 100, "Oat milk", "")

		assert.NoError(t, err)
		assert.Equal(t, "Oat milk", item.Name)
		mockItems.AssertExpectations(t)
	})

	t.Run("item hanging off another list is not found", func(t *testing.T) {
		mockLists := new(MockListRepository)
		mockItems := new(MockItemRepository)
		mockLists.On("FindOwned", mock.Anything, uint(1), uint(10)).Return(ownedList(10, 1), nil)
		mockItems.On("FindByID", mock.Anything, uint(100)).Return(&model.ShoppingListItem{ID: 100, Name: "Milk", ShoppingListID: 77}, nil)

		service := NewItemService(mockLists, mockItems)
		item, err := service.UpdateItem(context.Background(), 1, 10, 100, "Oat milk", "")

		assert.ErrorIs(t, err, apperrors.ErrItemNotFound)
		assert.Nil(t, item)
		mockItems.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing item is not found", func(t *testing.T) {
		mockLists := new(MockListRepository)
		mockItems := new(MockItemRepository)
		mockLists.On("FindOwned", mock.Anything, uint(1), uint(10)).Return(ownedList(10, 1), nil)
		mockItems.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		service := NewItemService(mockLists, mockItems)
		item, err := service.UpdateItem(context.Background(), 1, 10, 404, "Oat milk", "")

		assert.ErrorIs(t, err, apperrors.ErrItemNotFound)
		assert.Nil(t, item)
	})
}

func TestItemService_DeleteItem(t *testing.T) {
	t.Run("deletes an owned item", func(t *testing.T) {
		target := &model.ShoppingListItem{ID: 100, Name: "Milk", ShoppingListID: 10}
		mockLists := new(MockListRepository)
		mockItems := new(MockItemRepository)
		mockLists.On("FindOwned", mock.Anything, uint(1), uint(10)).Return(ownedList(10, 1), nil)
		mockItems.On("FindByID", mock.Anything, uint(100)).Return(target, nil)
		mockItems.On("Delete", mock.Anything, target).Return(nil)

		service := NewItemService(mockLists, mockItems)
		err := service.DeleteItem(context.Background(), 1, 10, 100)

		assert.NoError(t, err)
		mockItems.AssertExpectations(t)
	})

	t.Run("foreign parent list blocks the delete", func(t *testing.T) {
		mockLists := new(MockListRepository)
		mockItems := new(MockItemRepository)
		mockLists.On("FindOwned", mock.Anything, uint(2), uint(10)).Return(nil, gorm.ErrRecordNotFound)

		service := NewItemService(mockLists, mockItems)
		err := service.DeleteItem(context.Background(), 2, 10, 100)

		assert.ErrorIs(t, err, apperrors.ErrListNotFound)
		mockItems.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestItemService_ListItems(t *testing.T) {
	mockLists := new(MockListRepository)
	mockItems := new(MockItemRepository)
	mockLists.On("FindOwned", mock.Anything, uint(1), uint(10)).Return(ownedList(10, 1), nil)
	mockItems.On("ListByList", mock.Anything, uint(10), 0, 10).Return([]model.ShoppingListItem{
		{ID: 1, Name: "Milk", ShoppingListID: 10},
		{ID: 2, Name: "Eggs", ShoppingListID: 10},
	}, int64(2), nil)

	service := NewItemService(mockLists, mockItems)
	items, meta, err := service.ListItems(context.Background(), 1, 10, 1, 10)

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(2), meta.Total)
	assert.Equal(t, 1, meta.Pages)
	assert.False(t, meta.HasNext)
}
