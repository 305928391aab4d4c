package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// OperatorRole is the role a till operator holds.
type OperatorRole string

const (
	RoleAdmin   OperatorRole = "admin"
	RoleManager OperatorRole = "manager"
	RoleCashier OperatorRole = "cashier"
)

// IsValid reports whether the value is a known OperatorRole.
func (r OperatorRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCashier:
		return true
	}
	return false
}

// AccessTokenPayload is the input for minting an operator token.
type AccessTokenPayload struct {
	OperatorID uuid.UUID
	Role       OperatorRole
	JTI        string
}

// AccessTokenClaims is the typed JWT claim set carried by bearer tokens.
type AccessTokenClaims struct {
	OperatorID uuid.UUID    `json:"operator_id"`
	Role       OperatorRole `json:"role"`
	jwt.RegisteredClaims
}
