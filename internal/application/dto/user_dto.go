package dto

import "time"

// RegisterRequest signup input. Department is optional ("General" when blank).
type RegisterRequest struct {
	Name       string `json:"name" validate:"required,personname" msg:"required=Name is required;personname=Name should only contain letters and be 2-50 characters"`
	Email      string `json:"email" validate:"required,emailshape" msg:"required=Email is required;emailshape=Invalid email format"`
	Password   string `json:"password" validate:"min=6" msg:"min=Password must be at least 6 characters"`
	Department string `json:"department" validate:"omitempty,max=100"`
}

// LoginRequest login input.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,emailshape" msg:"required=Email and password are required;emailshape=Invalid email format"`
	Password string `json:"password" validate:"required" msg:"required=Email and password are required"`
}

// UserResponse public view of a user (never the password hash).
type UserResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	EmployeeCode string    `json:"employee_code"`
	Department   string    `json:"department"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthResponse is returned by login and signup.
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// EmployeeResponse directory entry.
type EmployeeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EmployeeListResponse body of GET /api/auth/employees.
type EmployeeListResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}
