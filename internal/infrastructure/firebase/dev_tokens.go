package firebase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func (f *FirebaseAuthClient) GenerateLongLivedToken(ctx context.Context, uid string) (string, error) {
	customToken, err := f.client.CustomToken(ctx, uid)
	if err != nil {
		return "", err
	}

	if f.apiKey != "" {
		idToken, err := f.exchangeCustomTokenForIDToken(customToken)
		if err != nil {
			return "", err
		}
		return idToken, nil
	}

	return customToken, nil
}

// MintLocalToken signs a plain JWT for a uid. Development only: lets tooling
// exercise the API without a Firebase web API key.
func MintLocalToken(uid, secret string, expiry int64) (string, error) {
	claims := jwt.MapClaims{
		"uid": uid,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Duration(expiry) * time.Second).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
