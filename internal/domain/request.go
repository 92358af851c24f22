package domain

// RequestEnvelope is one call to the remote query endpoint. It is built per
// call and never retained.
type RequestEnvelope struct {
	Query     string
	Headers   map[string]string
	TargetURL string
}

// RawResponse is the transport-level reply of the query endpoint, including
// any GraphQL errors array still embedded in Body.
type RawResponse struct {
	StatusCode int
	Header     map[string][]string
	Body       []byte
}

func (r *RawResponse) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// OperationResult is the status triple every remote operation returns.
type OperationResult struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}
