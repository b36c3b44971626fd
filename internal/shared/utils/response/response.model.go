// Package response defines the JSON envelope every ticketapp endpoint
// returns, success and error alike.
package response

// StandardApiResponse is the wire shape of every API reply. Data
// carries the payload on success; Errors carries binding or domain
// error details on failure. Both are omitted when empty.
type StandardApiResponse struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
}
