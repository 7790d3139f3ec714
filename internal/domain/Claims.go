package domain

import "github.com/golang-jwt/jwt/v5"

// RoleAdmin é o único perfil aceito pela API administrativa
const RoleAdmin = 1

type Claims struct {
	UserName   string `json:"user_name"`
	UserRoleID int    `json:"role_id"`
	jwt.RegisteredClaims
}
