package jwt

import (
	"fmt"
	"strings"

	jwtgo "github.com/dgrijalva/jwt-go"
	"github.com/kildevaeld/rask/httpcontext"
	"github.com/kildevaeld/strong"
)

const bearerPrefix = "Bearer "

type Config struct {
	// Secret verifies HMAC-signed tokens. Required.
	Secret []byte

	// UserValue is the context key the verified claims are stored
	// under. Defaults to "user".
	UserValue string
}

// New returns a bearer-token handler. A verified token stores its
// claims as a context user value and continues the walk; anything
// else becomes a 401 for the error phase.
func New(config Config) httpcontext.HandlerFunc {
	if config.UserValue == "" {
		config.UserValue = "user"
	}

	return func(ctx *httpcontext.Context) error {
		auth := ctx.Request().Header.Get(strong.HeaderAuthorization)
		if !strings.HasPrefix(auth, bearerPrefix) {
			return strong.NewHTTPError(strong.StatusUnauthorized)
		}

		token, err := jwtgo.Parse(strings.TrimPrefix(auth, bearerPrefix), func(t *jwtgo.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwtgo.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method '%v'", t.Header["alg"])
			}
			return config.Secret, nil
		})

		if err != nil || !token.Valid {
			return strong.NewHTTPError(strong.StatusUnauthorized)
		}

		ctx.SetUserValue(config.UserValue, token.Claims)
		return nil
	}
}
