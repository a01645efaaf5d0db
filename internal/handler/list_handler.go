package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"shoplist/internal/model"
	"shoplist/internal/service"
	"shoplist/internal/util"
)

// ListHandler handles shopping list endpoints.
type ListHandler struct {
	listService service.ListService
}

// NewListHandler creates a new list handler.
func NewListHandler(listService service.ListService) *ListHandler {
	return &ListHandler{listService: listService}
}

// ListRequest carries the mutable fields of a shopping list.
type ListRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// PagedListsResponse is the search envelope: matching lists plus paging
// metadata.
type PagedListsResponse struct {
	Data []model.ShoppingList `json:"data"`
	Meta util.Meta            `json:"meta"`
}

// ListLists godoc
// @Summary List the caller's shopping lists
// @Tags shoppinglists
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {array} model.ShoppingList
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /shoppinglists/ [get]
func (h *ListHandler) ListLists(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	page, limit := paging(c)
	lists, _, err := h.listService.ListLists(c.Request().Context(), session.UserID, page, limit)
	if err != nil {
		return httpError(err)
	}
	if lists == nil {
		lists = []model.ShoppingList{}
	}
	return c.JSON(http.StatusOK, lists)
}

// CreateList godoc
// @Summary Create a shopping list
// @Tags shoppinglists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ListRequest true "List fields"
// @Success 201 {object} model.ShoppingList
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /shoppinglists/ [post]
func (h *ListHandler) CreateList(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	var req ListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	list, err := h.listService.CreateList(c.Request().Context(), session.UserID, req.Name, req.Description)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, list)
}

// GetList godoc
// @Summary Get one shopping list
// @Tags shoppinglists
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shopping list ID"
// @Success 200 {object} model.ShoppingList
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /shoppinglists/{id} [get]
func (h *ListHandler) GetList(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	listID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	list, err := h.listService.GetList(c.Request().Context(), session.UserID, listID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, list)
}

// UpdateList godoc
// @Summary Update a shopping list
// @Tags shoppinglists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shopping list ID"
// @Param request body ListRequest true "List fields"
// @Success 200 {object} model.ShoppingList
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /shoppinglists/{id} [put]
func (h *ListHandler) UpdateList(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	listID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	list, err := h.listService.UpdateList(c.Request().Context(), session.UserID, listID, req.Name, req.Description)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, list)
}

// DeleteList godoc
// @Summary Delete a shopping list and all its items
// @Tags shoppinglists
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shopping list ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /shoppinglists/{id} [delete]
func (h *ListHandler) DeleteList(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	listID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.listService.DeleteList(c.Request().Context(), session.UserID, listID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("shoppinglist %d deleted", listID),
	})
}

// Search godoc
// @Summary Search the caller's shopping lists by name
// @Tags shoppinglists
// @Produce json
// @Security BearerAuth
// @Param q query string true "Substring to match against list names"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} PagedListsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /shoppinglists/search [get]
func (h *ListHandler) Search(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	page, limit := paging(c)
	lists, meta, err := h.listService.Search(c.Request().Context(), session.UserID, c.QueryParam("q"), page, limit)
	if err != nil {
		return httpError(err)
	}

	if len(lists) == 0 {
		return c.JSON(http.StatusOK, MessageResponse{
			Message: "Sorry, your search did not yield any results",
		})
	}
	return c.JSON(http.StatusOK, PagedListsResponse{Data: lists, Meta: meta})
}
