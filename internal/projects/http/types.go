package http

type createReq struct {
	Prompt string `json:"prompt"`
	Name   string `json:"name,omitempty"`
}

type chatReq struct {
	Message string `json:"message"`
}

type codeReq struct {
	HTML string `json:"html"`
}
