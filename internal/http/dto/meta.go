package dto

type HealthResponse struct {
	Status string `json:"status"`
}

type ServiceStatusResponse struct {
	Status       string `json:"status"`
	Service      string `json:"service"`
	Version      string `json:"version"`
	Model        string `json:"model"`
	Provider     string `json:"provider"`
	Endpoint     string `json:"endpoint"` // "standard" or "custom"
	PromptLoaded bool   `json:"prompt_loaded"`
}

type ReloadPromptResponse struct {
	Status       string `json:"status"`
	PromptLength int    `json:"prompt_length"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
