package models

import "github.com/golang-jwt/jwt/v5"

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Claims is the payload of an admin session token. Validity is solely a
// function of signature and expiry; there is no server-side revocation.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}
