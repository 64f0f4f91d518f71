package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	goerrors "github.com/goliatone/go-errors"
)

// AccessClaims mirrors the claims the provider mints into its access
// tokens. Only the fields the local session cares about are mapped.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// UserFromCredentials builds the local user record from a provider
// response, preferring token claims for identity and expiry and
// falling back to the response body.
//
// The token is parsed without signature verification: the provider is
// the authority on its own tokens and the local copy is display state,
// never an authorization input.
func UserFromCredentials(creds *Credentials) (*User, error) {
	if creds == nil {
		return nil, goerrors.New("provider returned no credentials", goerrors.CategoryAuth).
			WithCode(goerrors.CodeUnauthorized)
	}

	claims := &AccessClaims{}
	if creds.AccessToken != "" {
		if _, _, err := jwt.NewParser().ParseUnverified(creds.AccessToken, claims); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryAuth, "unable to parse provider access token").
				WithCode(goerrors.CodeUnauthorized)
		}
	}

	rawID := claims.RegisteredClaims.Subject
	if rawID == "" {
		rawID = creds.UserID
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryAuth, "provider returned an unusable identity").
			WithCode(goerrors.CodeUnauthorized).
			WithMetadata(map[string]any{"subject": rawID})
	}

	user := &User{
		ID:          id,
		Email:       firstNonEmpty(claims.Email, creds.Email),
		Role:        firstNonEmpty(claims.Role, creds.Role),
		Metadata:    creds.Metadata,
		AccessToken: creds.AccessToken,
		TokenExpiry: tokenExpiry(claims, creds),
	}

	return user, nil
}

func tokenExpiry(claims *AccessClaims, creds *Credentials) *time.Time {
	if claims.RegisteredClaims.ExpiresAt != nil {
		t := claims.RegisteredClaims.ExpiresAt.Time
		return &t
	}
	if creds.ExpiresIn > 0 {
		t := now().Add(time.Duration(creds.ExpiresIn) * time.Second)
		return &t
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
