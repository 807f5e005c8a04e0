package models

// Mail is an outbound HTML email handed to a mail transport.
type Mail struct {
	Subject  string `json:"subject"`
	HTMLBody string `json:"html"`
	To       string `json:"to"`
	From     string `json:"from"`

	// ReplyTo is optional; when empty replies go to From.
	ReplyTo string `json:"reply_to,omitempty"`
}
