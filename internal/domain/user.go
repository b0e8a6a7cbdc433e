package domain

import "time"

const (
	RoleStudent    = "student"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// ElevatedRole reports whether the role requires the admin authorization key
// at registration time.
func ElevatedRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

type User struct {
	UserID           string    `json:"id" dynamodbav:"user_id"`
	Email            string    `json:"email" dynamodbav:"email"`
	PasswordHash     string    `json:"-" dynamodbav:"password_hash"`
	Role             string    `json:"role" dynamodbav:"role"`
	FullName         string    `json:"fullName" dynamodbav:"full_name"`
	IsCollegeStudent bool      `json:"isCollegeStudent" dynamodbav:"is_college_student"`
	RollNo           string    `json:"rollNo,omitempty" dynamodbav:"roll_no"`
	Year             string    `json:"year,omitempty" dynamodbav:"year"`
	Branch           string    `json:"branch,omitempty" dynamodbav:"branch"`
	Degree           string    `json:"degree,omitempty" dynamodbav:"degree"`
	IsVerified       bool      `json:"isVerified" dynamodbav:"is_verified"`
	AvatarURL        string    `json:"profilePicture,omitempty" dynamodbav:"avatar_url"`
	CreatedAt        time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

// RegisterUserData is the profile payload submitted alongside the OTP code.
type RegisterUserData struct {
	Password         string `json:"password" validate:"required,min=8,max=72"`
	Role             string `json:"role"`
	FullName         string `json:"fullName" validate:"required"`
	IsCollegeStudent bool   `json:"isCollegeStudent"`
	RollNo           string `json:"rollNo"`
	Year             string `json:"year"`
	Branch           string `json:"branch"`
	Degree           string `json:"degree"`
	AdminAuthKey     string `json:"adminAuthKey"`
}
