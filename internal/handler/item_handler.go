package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"shoplist/internal/model"
	"shoplist/internal/service"
	"shoplist/internal/util"
)

// ItemHandler handles endpoints for items nested inside a shopping list.
type ItemHandler struct {
	itemService service.ItemService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// ItemRequest carries the mutable fields of a list item.
type ItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// PagedItemsResponse is the item listing envelope: one page of items plus
// paging metadata.
type PagedItemsResponse struct {
	Data []model.ShoppingListItem `json:"data"`
	Meta util.Meta                `json:"meta"`
}

// ListItems godoc
// @Summary List the items of a shopping list
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shopping list ID"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} PagedItemsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /shoppinglists/{id}/items [get]
func (h *ItemHandler) ListItems(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	listID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	page, limit := paging(c)
	items, meta, err := h.itemService.ListItems(c.Request().Context(), session.UserID, listID, page, limit)
	if err != nil {
		return httpError(err)
	}
	if items == nil {
		items = []model.ShoppingListItem{}
	}
	return c.JSON(http.StatusOK, PagedItemsResponse{Data: items, Meta: meta})
}

// CreateItem godoc
// @Summary Add an item to a shopping list
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shopping list ID"
// @Param request body ItemRequest true "Item fields"
// @Success 201 {object} model.ShoppingListItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /shoppinglists/{id}/items [post]
func (h *ItemHandler) CreateItem(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	listID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.itemService.CreateItem(c.Request().Context(), session.UserID, listID, req.Name, req.Description)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateItem godoc
// @Summary Update an item of a shopping list
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shopping list ID"
// @Param item_id path int true "Item ID"
// @Param request body ItemRequest true "Item fields"
// @Success 200 {object} model.ShoppingListItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /shoppinglists/{id}/items/{item_id} [put]
func (h *ItemHandler) UpdateItem(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	listID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "item_id")
	if err != nil {
		return err
	}

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.itemService.UpdateItem(c.Request().Context(), session.UserID, listID, itemID, req.Name, req.Description)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteItem godoc
// @Summary Delete an item of a shopping list
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shopping list ID"
// @Param item_id path int true "Item ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /shoppinglists/{id}/items/{item_id} [delete]
func (h *ItemHandler) DeleteItem(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	listID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "item_id")
	if err != nil {
		return err
	}

	if err := h.itemService.DeleteItem(c.Request().Context(), session.UserID, listID, itemID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("shoppinglist item %d deleted", itemID),
	})
}
