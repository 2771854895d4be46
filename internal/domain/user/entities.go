package user

import "time"

type Role string

const (
	RoleAdmin          Role = "admin"
	RoleAccountOfficer Role = "account_officer"
)

func ValidRole(r string) bool {
	return Role(r) == RoleAdmin || Role(r) == RoleAccountOfficer
}

type User struct {
	ID                 uint      `gorm:"primaryKey;column:id" json:"id"`
	Username           string    `gorm:"size:50;uniqueIndex" json:"username"`
	PasswordHash       string    `gorm:"size:255" json:"-"`
	FullName           string    `gorm:"size:100" json:"full_name"`
	Email              string    `gorm:"size:100" json:"email"`
	Phone              string    `gorm:"size:20" json:"phone"`
	Role               Role      `gorm:"size:20;default:'account_officer'" json:"role"`
	IsActive           bool      `gorm:"default:true" json:"is_active"`
	IsFirstLogin       bool      `gorm:"default:true" json:"is_first_login"`
	LastPasswordChange time.Time `gorm:"autoCreateTime" json:"last_password_change"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

func (u *User) IsAccountOfficer() bool { return u.Role == RoleAccountOfficer }
