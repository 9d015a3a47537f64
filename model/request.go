// file: model/request.go

package model

// SendEmailRequest defines the payload for sending mail from the caller's mailbox.
type SendEmailRequest struct {
	To          []string `json:"to" validate:"required,min=1,dive,email"`
	Cc          []string `json:"cc,omitempty" validate:"omitempty,dive,email"`
	Subject     string   `json:"subject" validate:"required,max=255"`
	Body        string   `json:"body" validate:"required"`
	ContentType string   `json:"content_type,omitempty" validate:"omitempty,oneof=Text HTML"`
}

// GenerateTextRequest defines the payload for a single text completion.
type GenerateTextRequest struct {
	Prompt    string `json:"prompt" validate:"required"`
	MaxTokens int    `json:"max_tokens,omitempty" validate:"omitempty,min=1,max=8192"`
}

// GenerateDocumentRequest defines the payload for building an office file.
// Content comes from Sections, else Body, else text generated from Prompt.
type GenerateDocumentRequest struct {
	Format   string    `json:"format" validate:"required"`
	Title    string    `json:"title" validate:"required,max=255"`
	Body     string    `json:"body,omitempty"`
	Prompt   string    `json:"prompt,omitempty"`
	Sections []Section `json:"sections,omitempty" validate:"omitempty,dive"`
}

// GenerateFileRequest builds a file from sections and uploads it to OneDrive.
// FileType defaults to ppt.
type GenerateFileRequest struct {
	FileType string    `json:"file_type,omitempty"`
	Title    string    `json:"title,omitempty" validate:"max=255"`
	Content  []Section `json:"content" validate:"required,min=1"`
}
