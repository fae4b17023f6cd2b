package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Issuer struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{Secret: secret, TTL: ttl, Now: time.Now}
}

func (i *Issuer) now() time.Time {
	if i.Now != nil {
		return i.Now()
	}
	return time.Now()
}

func (i *Issuer) CreateAccessToken(userID, role string) (string, time.Time, error) {
	issuedAt := i.now().UTC()
	exp := issuedAt.Add(i.TTL)

	claims := AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// AccessClaimsFromToken checks signature, algorithm and expiry. It never
// touches the store.
func AccessClaimsFromToken(tokenStr string, secret []byte) (*AccessClaims, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
