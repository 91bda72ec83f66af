package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
	RoleViewer   = "viewer"
)

// Roles en orden de jerarquía.
var Roles = []string{RoleAdmin, RoleManager, RoleEmployee, RoleViewer}

var roleLabels = map[string]string{
	RoleAdmin:    "Administrador",
	RoleManager:  "Gerente",
	RoleEmployee: "Empleado",
	RoleViewer:   "Visualizador",
}

// RoleLabel nombre legible del rol.
func RoleLabel(role string) string {
	if l, ok := roleLabels[role]; ok {
		return l
	}
	return role
}

// ValidRole indica si role es conocido.
func ValidRole(role string) bool {
	_, ok := roleLabels[role]
	return ok
}

// User representa un usuario interno del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Role         string
	Phone        string
	Status       string // active, inactive
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
