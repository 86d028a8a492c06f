package dto

type UploadResponse struct {
	BaseFileName string `json:"basefilename"`
	Key          string `json:"key"`
	URL          string `json:"url"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
