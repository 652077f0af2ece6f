// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegisterReq represents the request body for the /api/register endpoint.
type RegisterReq struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginReq represents the request body for the /api/login endpoint.
type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserRes is the public view of a user.
type UserRes struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// AuthRes is returned by register and login.
type AuthRes struct {
	Token string  `json:"token"`
	User  UserRes `json:"user"`
}
