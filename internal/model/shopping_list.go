package model

import "time"

// ShoppingList is a named collection of items owned by exactly one user.
// There is no sharing: every read and mutation is scoped to UserID.
type ShoppingList struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"size:255"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	CreatedAt   time.Time `json:"date_created"`
	UpdatedAt   time.Time `json:"date_modified"`

	// Items live and die with their parent list.
	Items []ShoppingListItem `json:"items,omitempty" gorm:"foreignKey:ShoppingListID;constraint:OnDelete:CASCADE"`
}
