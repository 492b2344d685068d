package model

import "time"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User is a staff profile. Optional columns stay NULL until the profile page fills them in.
type User struct {
	ID         string     `gorm:"type:varchar(64);primaryKey" json:"id"`
	Username   string     `gorm:"type:varchar(100);index" json:"username"`
	Role       string     `gorm:"type:varchar(20)" json:"role"`
	Email      string     `gorm:"type:varchar(255)" json:"email"`
	AvatarURL  *string    `gorm:"type:varchar(512)" json:"avatarUrl"`
	Department *string    `gorm:"type:varchar(100)" json:"department"`
	Location   *string    `gorm:"type:varchar(100)" json:"location"`
	JoinDate   *string    `gorm:"type:varchar(32)" json:"joinDate"`
	UpdatedAt  *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
