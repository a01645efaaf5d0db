package router

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"shoplist/internal/auth"
	apperrors "shoplist/internal/errors"
)

// Gate returns the authorization middleware for protected routes. Token
// parsing is delegated to the TokenService, so signature, expiry and the
// revocation ledger are all consulted before a request reaches a handler.
// The verified session is stored under the "user" context key.
func Gate(tokens *auth.TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			userID, err := tokens.Verify(c.Request().Context(), tokenString)
			if err != nil {
				return nil, err
			}
			return &auth.Session{UserID: userID, Token: tokenString}, nil
		},
		ErrorHandler: gateError,
	})
}

// gateError maps every authentication failure onto a 401 with a stable
// user-facing message. An Authorization header that is present but not of
// the form "Bearer <token>" counts as an invalid token; it must never be
// treated as a server fault.
func gateError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenRevoked),
		errors.Is(err, apperrors.ErrTokenInvalid):
		he := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}

	if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "Authorization header not provided",
			Code:  "AUTH_HEADER_MISSING",
		})
	}

	// Malformed header shape, or any other extraction failure.
	he := apperrors.MapErrorToHTTP(apperrors.ErrTokenInvalid)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}
