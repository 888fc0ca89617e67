package dto

// SignInRequest payload for sign-in.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignUpRequest payload for new accounts.
type SignUpRequest struct {
	CountryCode string `json:"countryCode" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
}

// ConfirmSignUpRequest payload for registration confirmation.
type ConfirmSignUpRequest struct {
	Email            string `json:"email" validate:"required,email"`
	ConfirmationCode string `json:"confirmationCode" validate:"required"`
}

// ForgotPasswordRequest payload for starting password recovery.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ConfirmForgotPasswordRequest payload for completing password recovery.
type ConfirmForgotPasswordRequest struct {
	Email            string `json:"email" validate:"required,email"`
	NewPassword      string `json:"newPassword" validate:"required,min=8"`
	ConfirmPassword  string `json:"confirmPassword" validate:"required"`
	ConfirmationCode string `json:"confirmationCode" validate:"required"`
}
