package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/enums"
)

// AccessTokenPayload carries the identity minted into a token.
type AccessTokenPayload struct {
	UserID   uuid.UUID
	Role     enums.Role
	VendorID *uuid.UUID
	JTI      string
}

// AccessTokenClaims is the JWT claim set the API trusts.
type AccessTokenClaims struct {
	UserID   uuid.UUID  `json:"uid"`
	Role     enums.Role `json:"role"`
	VendorID *uuid.UUID `json:"vendor_id,omitempty"`
	jwt.RegisteredClaims
}
