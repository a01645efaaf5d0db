package model

import "time"

// ShoppingListItem is a line item nested inside a shopping list. It cannot
// outlive its parent list.
type ShoppingListItem struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"size:255;not null"`
	Description    string    `json:"description" gorm:"size:255"`
	ShoppingListID uint      `json:"shoppinglist_id" gorm:"index;not null"`
	CreatedAt      time.Time `json:"date_created"`
	UpdatedAt      time.Time `json:"date_modified"`
}
