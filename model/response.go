package model

import "time"

type MessageResponse struct {
	Message string `json:"message"`
}

type SessionResponse struct {
	Email        string    `json:"email"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type GenerateTextResponse struct {
	Text string `json:"text"`
}

type DocumentResponse struct {
	FileName    string `json:"file_name"`
	Format      Format `json:"format"`
	DownloadURL string `json:"download_url"`
}

type UploadResponse struct {
	Message string `json:"message"`
	FileURL string `json:"file_url"`
}
