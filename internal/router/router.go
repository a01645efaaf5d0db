package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"shoplist/internal/auth"
	"shoplist/internal/handler"
)

// Register wires routes and middleware. Every list, item and search
// operation sits behind the authorization gate; only registration, login and
// the password-reset pair are public (the reset confirmation authenticates
// through its query token instead of the Authorization header).
func Register(
	e *echo.Echo,
	tokens *auth.TokenService,
	authHandler *handler.AuthHandler,
	listHandler *handler.ListHandler,
	itemHandler *handler.ItemHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/reset-password", authHandler.RequestPasswordReset)
	e.GET("/auth/reset-password", authHandler.ConfirmPasswordReset)

	// Secured routes (require a valid, unrevoked bearer token)
	secured := e.Group("", Gate(tokens))

	secured.POST("/auth/logout", authHandler.Logout)
	secured.POST("/auth/change-password", authHandler.ChangePassword)

	secured.GET("/shoppinglists/", listHandler.ListLists)
	secured.POST("/shoppinglists/", listHandler.CreateList)
	secured.GET("/shoppinglists/search", listHandler.Search)
	secured.GET("/shoppinglists/:id", listHandler.GetList)
	secured.PUT("/shoppinglists/:id", listHandler.UpdateList)
	secured.DELETE("/shoppinglists/:id", listHandler.DeleteList)

	secured.GET("/shoppinglists/:id/items", itemHandler.ListItems)
	secured.POST("/shoppinglists/:id/items", itemHandler.CreateItem)
	secured.PUT("/shoppinglists/:id/items/:item_id", itemHandler.UpdateItem)
	secured.DELETE("/shoppinglists/:id/items/:item_id", itemHandler.DeleteItem)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
