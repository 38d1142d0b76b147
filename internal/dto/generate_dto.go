package dto

type GenerateTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type GenerateRequest struct {
	Prompt  string         `json:"prompt"`
	History []GenerateTurn `json:"history"`
}

type GenerateResponse struct {
	Text string `json:"text"`
}

type GenerateErrorResponse struct {
	Error string `json:"error"`
}
