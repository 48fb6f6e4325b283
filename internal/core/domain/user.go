package domain

// User models an account that can log in.
type User struct {
	Meta         `bson:",inline"`
	Username     string `json:"username" bson:"username" validate:"required,min=3,max=64"`
	Email        string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Password     string `json:"password,omitempty" bson:"-" validate:"omitempty,min=8,max=72"`
	PasswordHash string `json:"-" bson:"password_hash"`
	Role         string `json:"role" bson:"role" validate:"omitempty,max=64"`
	Active       bool   `json:"active" bson:"active"`
}

// Role groups permissions under a name that is carried in tokens.
type Role struct {
	Meta        `bson:",inline"`
	Name        string   `json:"name" bson:"name" validate:"required,max=64"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Permissions []string `json:"permissions" bson:"permissions"`
}

// Permission is a single grantable capability, e.g. "tenders:write".
type Permission struct {
	Meta        `bson:",inline"`
	Code        string `json:"code" bson:"code" validate:"required,max=64"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}
