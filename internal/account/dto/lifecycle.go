package dto

type TokenRequestInput struct {
	Email string `json:"email"`
}

type ActivateInput struct {
	Token string `json:"token"`
}

type ValidateResetTokenInput struct {
	Token string `json:"token"`
}

type ResetPasswordInput struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}
