package posts

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Input is the create post and add comment payload
type Input struct {
	Text string `json:"text"`
}

// Validate will run validation rules
func (in Input) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Text, validation.Required.Error("Text is required")),
	)
}
