package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorKey = "actor"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims identify the caller. Subject carries the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator turns a bearer token into an actor.Actor. Restaurant users
// are resolved to the restaurant they own through the catalog.
type Authenticator struct {
	secret  []byte
	catalog ports.Catalog
}

// NewAuthenticator creates an authenticator verifying HS256 tokens signed
// with secret. catalog resolves the restaurant of restaurant owners.
func NewAuthenticator(secret string, catalog ports.Catalog) *Authenticator {
	return &Authenticator{secret: []byte(secret), catalog: catalog}
}

// IssueToken signs an HS256 token for userID acting as role.
func (a *Authenticator) IssueToken(userID kernel.UUID, role actor.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Authenticator) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Resolve validates tokenString and builds the actor it names.
func (a *Authenticator) Resolve(c echo.Context, tokenString string) (actor.Actor, error) {
	claims, err := a.parse(tokenString)
	if err != nil {
		return actor.Actor{}, err
	}
	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return actor.Actor{}, errors.Join(ErrInvalidToken, err)
	}
	role, err := actor.ParseRole(claims.Role)
	if err != nil {
		return actor.Actor{}, errors.Join(ErrInvalidToken, err)
	}

	var restaurantID *kernel.UUID
	if role == actor.Restaurant {
		info, err := a.catalog.GetRestaurantByOwner(c.Request().Context(), userID)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return actor.Actor{}, errs.NewAccessDeniedError("restaurant user owns no restaurant")
		}
		if err != nil {
			return actor.Actor{}, err
		}
		restaurantID = &info.ID
	}
	return actor.NewActor(userID, role, restaurantID)
}

// Middleware requires a bearer token. The websocket route may pass it as
// the token query parameter since browsers cannot set headers on upgrade.
func (a *Authenticator) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := bearerToken(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "unauthorized", Message: err.Error()})
		}
		caller, err := a.Resolve(c, tokenString)
		if err != nil {
			if errors.Is(err, ErrInvalidToken) {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "unauthorized", Message: ErrInvalidToken.Error()})
			}
			return writeError(c, err)
		}
		c.Set(actorKey, caller)
		return next(c)
	}
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		if token := c.QueryParam("token"); token != "" && strings.HasSuffix(c.Path(), "/ws") {
			return token, nil
		}
		return "", ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}

func actorFrom(c echo.Context) actor.Actor {
	a, _ := c.Get(actorKey).(actor.Actor)
	return a
}
