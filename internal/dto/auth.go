package dto

import "time"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type RestoreResponse struct {
	Restored bool   `json:"restored"`
	Snapshot string `json:"snapshot"`
}
