package dto

// CreateClientRequest represents the client creation request
type CreateClientRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// UpdateClientRequest maps field names to new values, e.g. {"address": "2 Side St"}
type UpdateClientRequest map[string]string

// ClientResponse represents a client
type ClientResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

// ClientListResponse represents a list of clients
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Total int              `json:"total"`
}
