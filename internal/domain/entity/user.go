package entity

import "time"

// Role is fixed when the user is created; there is no promotion flow.
type Role string

// Valid roles for User.
const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// DefaultDepartment is assigned when signup carries no department.
const DefaultDepartment = "General"

// User is an identity of the system: an admin or an employee.
type User struct {
	ID           string
	Name         string
	Email        string // normalized: trimmed, lower case, unique
	PasswordHash string // bcrypt hash, never plain text once persisted
	Role         Role
	EmployeeCode string // EMP0001, EMP0002, ...
	Department   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Owner is the public projection of a User joined onto shifts.
type Owner struct {
	ID           string
	Name         string
	Email        string
	EmployeeCode string
}

// AsOwner returns the public fields of u.
func (u *User) AsOwner() Owner {
	return Owner{ID: u.ID, Name: u.Name, Email: u.Email, EmployeeCode: u.EmployeeCode}
}

// EmployeeSummary is a directory entry (id + name).
type EmployeeSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
