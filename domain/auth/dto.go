package auth

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

type SendOTPRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,max=32"`
}

type VerifyOTPRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,max=32"`
	OTP         string `json:"otp" binding:"required,max=16"`
	Username    string `json:"username" binding:"omitempty,max=64"`
}

// UpdateUsernameRequest may omit Token when the client sends it as a bearer credential.
type UpdateUsernameRequest struct {
	Token    string `json:"token"`
	Username string `json:"username" binding:"required,max=64"`
}

type SessionResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

// NormalizeUsername trims surrounding space and composes the name to NFC so visually equal
// names are stored identically.
func NormalizeUsername(username string) string {
	return norm.NFC.String(strings.TrimSpace(username))
}

func (r SessionResponse) toMap() map[string]any {
	return map[string]any{
		"token":     r.Token,
		"user_id":   r.UserID,
		"user_name": r.UserName,
	}
}
