package dto

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type ListResponse struct {
	Items  interface{} `json:"items"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

type RenderedResponse struct {
	Entity   interface{} `json:"entity"`
	Rendered interface{} `json:"rendered"`
}
