package response

// Envelope is the body of every user-facing payment endpoint.
type Envelope struct {
	Status  bool                `json:"status"`
	Message string              `json:"message,omitempty"`
	Data    any                 `json:"data"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func OK(message string, data any) Envelope {
	return Envelope{Status: true, Message: message, Data: data}
}

func Fail(message string) Envelope {
	return Envelope{Status: false, Message: message}
}

func ValidationFailed(errors map[string][]string) Envelope {
	return Envelope{Status: false, Message: "Validation errors", Errors: errors}
}
