package domain

import "time"

// Challenge is the outstanding OTP record for an email address.
// PK: email (case-sensitive). At most one live challenge exists per email;
// issuing a new one overwrites the old.
// ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type Challenge struct {
	Email     string `json:"email" dynamodbav:"email"`
	Code      string `json:"-" dynamodbav:"code"` // 6-digit numeric, never echoed back
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

// Expired reports whether the challenge's validity window has passed.
func (c *Challenge) Expired(now time.Time) bool {
	return now.Unix() > c.ExpiresAt
}
