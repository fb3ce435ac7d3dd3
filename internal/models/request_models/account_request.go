package request_models

type SignUpRequest struct {
	StageName string `json:"stage_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type DeleteAccountRequest struct {
	ConfirmationText string `json:"confirmation_text" binding:"required"`
}
