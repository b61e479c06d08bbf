package jwttoken

import (
	"devdeck/internal/platform/middleware"
	id "devdeck/pkg/domain"
	dErrors "devdeck/pkg/domain-errors"
)

// JWTServiceAdapter bridges JWTService to the middleware.JWTValidator
// interface, parsing the account claim into a typed ID.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	accountID, err := id.ParseAccountID(claims.AccountID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid account claim")
	}
	return &middleware.JWTClaims{AccountID: accountID}, nil
}
