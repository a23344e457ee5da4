package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/SscSPs/finance_dashboard/internal/apperrors"
	"github.com/SscSPs/finance_dashboard/internal/core/services"
	"github.com/SscSPs/finance_dashboard/internal/repositories/kv"
	"github.com/SscSPs/finance_dashboard/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newStoreBackedAuthService() (*services.AuthService, *kv.UserRepository) {
	store := kv.NewNotifyingStore(kv.NewMemoryStore())
	users := kv.NewUserRepository(store, nil)
	svc := services.NewAuthService(users, kv.NewSessionRepository(store, nil),
		services.WithPasswordHasher(utils.NewPasswordHasher(bcrypt.MinCost)))
	return svc, users
}

func TestAuthService_ConcurrentRegistrations(t *testing.T) {
	ctx := context.Background()
	svc, users := newStoreBackedAuthService()

	const n = 20
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(ctx, fmt.Sprintf("u%d@example.com", i), "pw", "User")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Len(t, users.ListUsers(ctx), n, "no directory write is lost")

	var succeeded, duplicates atomic.Int32
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(ctx, "same@example.com", "pw", "Same")
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, apperrors.ErrDuplicateEmail):
				duplicates.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, succeeded.Load())
	assert.EqualValues(t, n-1, duplicates.Load())
	assert.Len(t, users.ListUsers(ctx), n+1)
}

func TestAuthService_ConcurrentProfileUpdatesKeepEmailsUnique(t *testing.T) {
	ctx := context.Background()
	svc, users := newStoreBackedAuthService()

	const n = 10
	ids := make([]string, n)
	for i := range n {
		u, err := svc.Register(ctx, fmt.Sprintf("u%d@example.com", i), "pw", "User")
		require.NoError(t, err)
		ids[i] = u.ID
	}

	var succeeded atomic.Int32
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.UpdateProfile(ctx, id, "Renamed", "taken@example.com"); err == nil {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, succeeded.Load())
	taken := 0
	for _, u := range users.ListUsers(ctx) {
		if u.Email == "taken@example.com" {
			taken++
		}
	}
	assert.Equal(t, 1, taken)
	assert.Len(t, users.ListUsers(ctx), n)
}
