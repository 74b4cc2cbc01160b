package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/srgjo27/ticket_inventory/internal/core/domain"
)

const principalKey = "principal"

var errUnauthenticated = echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid bearer token")

type accessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Authenticator verifies HS256 bearer tokens carrying the caller's id in sub and role.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Middleware stores the verified domain.Principal in the echo context.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return errUnauthenticated
			}

			principal, err := a.Verify(raw)
			if err != nil {
				return &echo.HTTPError{Code: errUnauthenticated.Code, Message: errUnauthenticated.Message, Internal: err}
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

func (a *Authenticator) Verify(raw string) (domain.Principal, error) {
	var claims accessClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domain.Principal{}, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Principal{}, errors.New("subject is not a user id")
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return domain.Principal{}, err
	}

	return domain.Principal{UserID: userID, Role: role}, nil
}

// Issue signs a token for p. Tokens are normally minted by the identity service; this is
// used by tooling and tests.
func (a *Authenticator) Issue(p domain.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: string(p.Role),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// RequireValidator rejects callers whose role may not admit tickets at the door.
func RequireValidator() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return errUnauthenticated
			}
			if !p.Role.CanValidateTickets() {
				return echo.NewHTTPError(http.StatusForbidden, "role may not validate tickets")
			}
			return next(c)
		}
	}
}

func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
