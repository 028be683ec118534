package chi

type errorResponse struct {
	Error string `json:"error"`
}

type upstreamErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
	Body   string `json:"body"`
}

type healthResponse struct {
	OK                   bool              `json:"ok"`
	APIKeyPresent        bool              `json:"api_key_present"`
	GenerativeKeyPresent bool              `json:"generative_key_present"`
	Status               string            `json:"status"`
	Checks               map[string]string `json:"checks"`
}

type generateRequest struct {
	UserImage  string `json:"userImage" validate:"required"`
	ClothImage string `json:"clothImage" validate:"required"`
}

type generateResponse struct {
	Image string `json:"image"`
}
