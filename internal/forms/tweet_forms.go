package forms

import (
	"strings"

	"chirp/internal/validation"
)

// CreateTweetForm is the compose contract: a required non-empty message and
// an optional image attachment.
type CreateTweetForm struct {
	Message string
	// Image fields are set by the handler after a successful upload.
	Image       string
	ImageWidth  int
	ImageHeight int

	Errors Errors
}

// Validate checks that the message is present. Returns true when valid.
func (f *CreateTweetForm) Validate() bool {
	f.Errors = Errors{}
	f.Message = strings.TrimSpace(f.Message)

	if err := validation.ValidateRequired("message", f.Message); err != nil {
		f.Errors.Add("message", err.Error())
	}

	return !f.Errors.Any()
}
