package models

// AdminRoleName is the role name gating admin-only operations.
const AdminRoleName = "admin"

// Role is a named permission level referenced by users.
type Role struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RoleName string `gorm:"not null" json:"roleName"`

	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

// Rank is a community standing badge (name plus logo) referenced by users.
type Rank struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	RankName    string `gorm:"not null" json:"rankName"`
	RankLogoURL string `gorm:"column:rank_logo_url" json:"rankLogoUrl"`
}
