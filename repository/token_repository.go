// file: repository/token_repository.go

package repository

import (
	"office-graph-api/logger"
	"office-graph-api/model"
	"sync"
)

// ITokenRepository defines the contract for the credential store.
// Records are keyed by the user's email exactly as the provider reported it.
type ITokenRepository interface {
	Get(email string) (model.TokenRecord, bool)
	Save(email string, token model.TokenRecord)
	Delete(email string)
}

// TokenRepository keeps token records in process memory only.
type TokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]model.TokenRecord
}

// NewTokenRepository creates an empty in-memory credential store.
func NewTokenRepository() *TokenRepository {
	return &TokenRepository{tokens: make(map[string]model.TokenRecord)}
}

// Get returns the cached record for email, if any.
func (r *TokenRepository) Get(email string) (model.TokenRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	token, ok := r.tokens[email]
	return token, ok
}

// Save replaces the record for email.
func (r *TokenRepository) Save(email string, token model.TokenRecord) {
	r.mu.Lock()
	r.tokens[email] = token
	r.mu.Unlock()

	logger.Log.WithField("email", email).WithField("expires_at", token.ExpiresAt).Debug("Token record stored")
}

// Delete drops the record for email. Deleting an unknown email is a no-op.
func (r *TokenRepository) Delete(email string) {
	r.mu.Lock()
	delete(r.tokens, email)
	r.mu.Unlock()

	logger.Log.WithField("email", email).Debug("Token record removed")
}
