package users

import "time"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsStaff      bool      `json:"isStaff"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SignupInput is the body of POST /signup.
type SignupInput struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginInput is the body of POST /token.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshInput is the body of POST /token/refresh.
type RefreshInput struct {
	Refresh string `json:"refresh" validate:"required"`
}

// Session is what a successful login returns.
type Session struct {
	User    User
	Access  string
	Refresh string
	Credits int
}
