package model

// User is the dashboard operator as reported by the identity provider or
// the upstream login endpoint.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	Role        string `json:"role,omitempty"`
	StationID   string `json:"stationId,omitempty"`
}

// LoginResult is the body returned by the proxy login endpoint.
type LoginResult struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

// LogoutResult is the body returned by the proxy logout endpoint.
type LogoutResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
