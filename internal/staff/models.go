package staff

import (
	"time"

	"github.com/google/uuid"
	"github.com/golang-jwt/jwt/v4"
)

// Role enumerates the back-office portals an account can belong to
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleStaff     Role = "STAFF"
	RoleOrganizer Role = "ORGANIZER"
	RoleSupplier  Role = "SUPPLIER"
)

// Account is a back-office user (admin, staff, organizer or supplier)
type Account struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FirstName string    `json:"first_name" gorm:"not null"`
	LastName  string    `json:"last_name" gorm:"not null"`
	Password  string    `json:"-" gorm:"not null"` // hide in json
	Role      Role      `json:"role" gorm:"not null;default:'STAFF'"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Account) TableName() string {
	return "staff_accounts"
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleAdmin), string(RoleStaff), string(RoleOrganizer), string(RoleSupplier):
		return true
	default:
		return false
	}
}

// JWTClaims carries account identity inside access and refresh tokens
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Type   string `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// TokenPair bundles an access token with its refresh token
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
