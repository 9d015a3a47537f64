package repository

import (
	"fmt"
	"office-graph-api/model"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenRepository_SaveGetDelete(t *testing.T) {
	repo := NewTokenRepository()

	_, ok := repo.Get("alice@example.com")
	assert.False(t, ok)

	record := model.TokenRecord{AccessToken: "a1", RefreshToken: "r1", ExpiresAt: time.Now().Add(time.Hour)}
	repo.Save("alice@example.com", record)

	got, ok := repo.Get("alice@example.com")
	assert.True(t, ok)
	assert.Equal(t, record, got)

	// Identities are compared verbatim.
	_, ok = repo.Get("Alice@example.com")
	assert.False(t, ok)

	repo.Delete("alice@example.com")
	_, ok = repo.Get("alice@example.com")
	assert.False(t, ok)
}

func TestTokenRepository_ConcurrentAccess(t *testing.T) {
	repo := NewTokenRepository()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := fmt.Sprintf("user%d@example.com", i%5)
			repo.Save(email, model.TokenRecord{AccessToken: fmt.Sprint(i)})
			repo.Get(email)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		_, ok := repo.Get(fmt.Sprintf("user%d@example.com", i))
		assert.True(t, ok)
	}
}
