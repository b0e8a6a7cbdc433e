package domain

import "time"

// Community access levels.
const (
	AccessPublic  = "public"
	AccessPrivate = "private"
)

type Community struct {
	CommunityID string    `json:"id" dynamodbav:"community_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Description string    `json:"description" dynamodbav:"description"`
	Category    string    `json:"category" dynamodbav:"category"`
	Members     int       `json:"members" dynamodbav:"members"`
	Access      string    `json:"access" dynamodbav:"access"`
	IsOfficial  bool      `json:"isOfficial" dynamodbav:"is_official"`
	Rating      float64   `json:"rating" dynamodbav:"rating"`
	CreatedBy   string    `json:"createdBy" dynamodbav:"created_by"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"created_at"`
}

type CreateCommunityRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Category    string `json:"category" validate:"required"`
	Access      string `json:"access" validate:"omitempty,oneof=public private"`
}
