package models

import "github.com/golang-jwt/jwt/v5"

// UserRole represents the roles the host application grants to API callers.
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RolePlanner  UserRole = "PLANNER"
	RoleOperator UserRole = "OPERATOR"
	RoleViewer   UserRole = "VIEWER"
)

// JWTClaims is the access token payload. Timezone and Lang carry the invoking user's
// preferences so evaluations never depend on ambient session state.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	Timezone string   `json:"tz,omitempty"`
	Lang     string   `json:"lang,omitempty"`
	jwt.RegisteredClaims
}
