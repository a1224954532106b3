package dto

import (
	"time"

	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
)

// DatabaseProfileRequest creates or updates a connection profile.
type DatabaseProfileRequest struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
	URI      string `json:"uri"`
}

// DatabaseProfileResponse is the public view of a profile. The password
// never appears in responses.
type DatabaseProfileResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Host      string `json:"host,omitempty"`
	Port      int    `json:"port,omitempty"`
	Username  string `json:"username,omitempty"`
	Database  string `json:"database,omitempty"`
	URI       string `json:"uri,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ToProfileEntity converts the request to an entity for the usecase.
func (r *DatabaseProfileRequest) ToProfileEntity() *entity.DatabaseProfile {
	return &entity.DatabaseProfile{
		Name:     r.Name,
		Type:     r.Type,
		Host:     r.Host,
		Port:     r.Port,
		Username: r.Username,
		Password: r.Password,
		Database: r.Database,
		URI:      r.URI,
	}
}

// ToDatabaseProfileResponse converts entity.DatabaseProfile to its DTO
func ToDatabaseProfileResponse(profile *entity.DatabaseProfile) *DatabaseProfileResponse {
	return &DatabaseProfileResponse{
		ID:        profile.ID,
		Name:      profile.Name,
		Type:      profile.Type,
		Host:      profile.Host,
		Port:      profile.Port,
		Username:  profile.Username,
		Database:  profile.Database,
		URI:       profile.URI,
		CreatedAt: profile.CreatedAt.Format(time.RFC3339),
		UpdatedAt: profile.UpdatedAt.Format(time.RFC3339),
	}
}

// ToDatabaseProfileListResponse converts a slice of profiles to DTOs
func ToDatabaseProfileListResponse(profiles []*entity.DatabaseProfile) []*DatabaseProfileResponse {
	responses := make([]*DatabaseProfileResponse, len(profiles))
	for i, p := range profiles {
		responses[i] = ToDatabaseProfileResponse(p)
	}
	return responses
}
