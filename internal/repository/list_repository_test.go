package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shoplist/internal/model"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&model.ShoppingList{}, &model.ShoppingListItem{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func seedListWithItems(t *testing.T, lists ListRepository, items ItemRepository, ownerID uint, names ...string) (*model.ShoppingList, []uint) {
	ctx := context.Background()
	list := &model.ShoppingList{Name: "Groceries", UserID: ownerID}
	require.NoError(t, lists.Create(ctx, list))

	itemIDs := make([]uint, 0, len(names))
	for _, name := range names {
		item := &model.ShoppingListItem{Name: name, ShoppingListID: list.ID}
		require.NoError(t, items.Create(ctx, item))
		itemIDs = append(itemIDs, item.ID)
	}
	return list, itemIDs
}

func TestListRepository_DeleteWithItems(t *testing.T) {
	db := initTestDB(t)
	lists := NewListRepository(db)
	items := NewItemRepository(db)
	ctx := context.Background()

	list, itemIDs := seedListWithItems(t, lists, items, 1, "Milk", "Eggs", "Bread")

	// An unrelated list must survive the delete untouched.
	other, otherItemIDs := seedListWithItems(t, lists, items, 2, "Screws")

	require.NoError(t, lists.DeleteWithItems(ctx, list))

	_, err := lists.FindOwned(ctx, 1, list.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	for _, id := range itemIDs {
		_, err := items.FindByID(ctx, id)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	}

	survivor, err := lists.FindOwned(ctx, 2, other.ID)
	assert.NoError(t, err)
	assert.Equal(t, other.ID, survivor.ID)
	_, err = items.FindByID(ctx, otherItemIDs[0])
	assert.NoError(t, err)
}

// A failure partway through the delete must leave the list row in place:
// either the list and all its items go, or nothing does.
func TestListRepository_DeleteWithItems_RollsBack(t *testing.T) {
	db := initTestDB(t)
	lists := NewListRepository(db)
	items := NewItemRepository(db)
	ctx := context.Background()

	list, _ := seedListWithItems(t, lists, items, 1, "Milk")

	// Dropping the items table makes the first statement of the
	// transaction fail.
	require.NoError(t, db.Migrator().DropTable(&model.ShoppingListItem{}))

	assert.Error(t, lists.DeleteWithItems(ctx, list))

	survivor, err := lists.FindOwned(ctx, 1, list.ID)
	assert.NoError(t, err)
	assert.Equal(t, list.ID, survivor.ID)
}

func TestListRepository_FindOwnedScopesToOwner(t *testing.T) {
	db := initTestDB(t)
	lists := NewListRepository(db)
	items := NewItemRepository(db)
	ctx := context.Background()

	list, _ := seedListWithItems(t, lists, items, 1, "Milk")

	_, err := lists.FindOwned(ctx, 2, list.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	owned, err := lists.FindOwned(ctx, 1, list.ID)
	assert.NoError(t, err)
	assert.Equal(t, list.ID, owned.ID)
}

func TestListRepository_SearchByName(t *testing.T) {
	db := initTestDB(t)
	lists := NewListRepository(db)
	ctx := context.Background()

	for _, seed := range []model.ShoppingList{
		{Name: "Groceries", UserID: 1},
		{Name: "Weekend groceries", UserID: 1},
		{Name: "Groceries", UserID: 2},
		{Name: "Hardware", UserID: 1},
	} {
		list := seed
		require.NoError(t, lists.Create(ctx, &list))
	}

	found, total, err := lists.SearchByName(ctx, 1, "GROC", 0, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, found, 2)
	for _, l := range found {
		assert.Equal(t, uint(1), l.UserID)
	}
}
