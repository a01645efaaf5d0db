package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shoplist/internal/auth"
	apperrors "shoplist/internal/errors"
)

// MessageResponse is the plain message envelope used by endpoints that have
// nothing else to say.
type MessageResponse struct {
	Message string `json:"message"`
}

// httpError turns a domain error into an echo error carrying the standard
// ErrorResponse body.
func httpError(err error) *echo.HTTPError {
	he := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}

// currentSession returns the session the authorization gate stored for this
// request. A missing session on a gated route is a wiring bug, not a user
// error, but it is still answered with 401 rather than a panic.
func currentSession(c echo.Context) (*auth.Session, error) {
	session, ok := c.Get("user").(*auth.Session)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "Invalid token. Please register or login",
			Code:  "INVALID_TOKEN",
		})
	}
	return session, nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid " + name,
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}

// paging reads the limit/page query parameters, leaving normalization to the
// service layer.
func paging(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	return page, limit
}
