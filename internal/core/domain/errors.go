package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrForbidden          = errors.New("access forbidden")
	ErrUnknownRole        = errors.New("unknown role")

	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateSKU     = errors.New("sku already exists")
	ErrCategoryNotFound = errors.New("category not found")
)
