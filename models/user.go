package models

import "time"

// บทบาทผู้ใช้
const (
	RoleUser    = "USER"
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
)

// ช่องทางยืนยันตัวตน
const (
	ProviderLocal  = "LOCAL"
	ProviderGoogle = "GOOGLE"
	ProviderGitHub = "GITHUB"
)

type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;size:60;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;size:120;not null"`
	Password     string `json:"-"` // bcrypt hash; ว่างสำหรับบัญชี OAuth ล้วน
	FirstName    string `json:"first_name" gorm:"size:50"`
	LastName     string `json:"last_name" gorm:"size:50"`
	Role         string `json:"role" gorm:"size:20;not null"` // USER | ADMIN | MANAGER
	Enabled      bool   `json:"enabled" gorm:"not null;default:true"`
	AuthProvider string `json:"auth_provider" gorm:"size:20;not null"` // LOCAL | GOOGLE | GITHUB
	ProviderID   string `json:"provider_id" gorm:"size:120"`           // subject/id จากฝั่ง provider

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}
