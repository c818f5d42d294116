package model

// RegisterRequest carries the text fields of the multipart registration form.
type RegisterRequest struct {
	Username string `form:"username" validate:"required,min=3,max=50"`
	Email    string `form:"email" validate:"required,email"`
	FullName string `form:"fullName" validate:"required,max=100"`
	Password string `form:"password" validate:"required,min=6"`
}

// LoginRequest accepts either a username or an email.
type LoginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Username string `json:"username" validate:"required_without=Email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
}

// PublishVideoRequest carries the text fields of the multipart upload form.
type PublishVideoRequest struct {
	Title       string  `form:"title" validate:"required,max=200"`
	Description string  `form:"description" validate:"required"`
	Duration    float64 `form:"duration" validate:"gte=0"`
}

type UpdateVideoRequest struct {
	Title       *string `form:"title" validate:"omitempty,min=1,max=200"`
	Description *string `form:"description" validate:"omitempty,min=1"`
}

type ContentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

type PlaylistRequest struct {
	Name        string `json:"name" validate:"required,max=150"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdatePlaylistRequest leaves the description as it is when it is omitted.
type UpdatePlaylistRequest struct {
	Name        string  `json:"name" validate:"required,max=150"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}
