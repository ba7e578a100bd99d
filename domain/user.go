package domain

import "time"

// Role es el nivel de privilegio de una cuenta del back-office
type Role string

const (
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

// User es una cuenta del back-office
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	FullName  string    `json:"full_name"`
	Role      Role      `gorm:"type:varchar(20);default:'agent'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName fija el nombre de la tabla en MySQL
func (User) TableName() string {
	return "users"
}

// Principal es el usuario autenticado de un request
type Principal struct {
	UserID   uint
	Username string
	Role     Role
}

// Privileged indica si puede ver contenido no verificado
func (p *Principal) Privileged() bool {
	return p != nil && p.Role == RoleAdmin
}
