package request

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type LanguageRequest struct {
	Language string `json:"language" validate:"required,min=2,max=10"`
}
