package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account_backend/internal/feature/account/domain/entity"
)

// mockUserRepository is a mock UserRepository implementation for testing.
type mockUserRepository struct {
	createFn      func(ctx context.Context, u *entity.User) error
	findByEmailFn func(ctx context.Context, email string) (*entity.User, error)
	findByIDFn    func(ctx context.Context, id uint) (*entity.User, error)
	updateFn      func(ctx context.Context, u *entity.User) error
}

func (m *mockUserRepository) Create(ctx context.Context, u *entity.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *entity.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, u)
	}
	return nil
}

func TestNewCachingUserRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "users",
		},
		{
			name:              "negative ttl uses default",
			ttl:               -1 * time.Minute,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "users",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingUserRepository(nil, tt.ttl, &mockUserRepository{}, tt.namespace)

			assert.Equal(t, tt.expectedTTL, repo.ttl)
			assert.Equal(t, tt.expectedNamespace, repo.namespace)
		})
	}
}

func TestCachingUserRepository_FindByID_NilRedis(t *testing.T) {
	t.Parallel()

	expected := &entity.User{ID: 1, Name: "Ann", Email: "ann@x.com"}
	calls := 0
	inner := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.User, error) {
			calls++
			return expected, nil
		},
	}

	repo := NewCachingUserRepository(nil, time.Minute, inner, "users")
	out, err := repo.FindByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, expected, out)
	assert.Equal(t, 1, calls, "nil Redis must bypass the cache and hit the inner repository")
}

func TestCachingUserRepository_FindByID_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	cached := &entity.User{ID: 1, Name: "Ann", Email: "ann@x.com"}
	data, err := json.Marshal(cached)
	require.NoError(t, err)

	mock.ExpectGet("users:id:1").SetVal(string(data))

	inner := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.User, error) {
			t.Fatal("inner repository must not be hit on a cache hit")
			return nil, nil
		},
	}

	repo := NewCachingUserRepository(rdb, time.Minute, inner, "users")
	out, err := repo.FindByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, cached.Email, out.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingUserRepository_FindByID_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	fromDB := &entity.User{ID: 1, Name: "Ann", Email: "ann@x.com"}
	data, err := json.Marshal(fromDB)
	require.NoError(t, err)

	mock.ExpectGet("users:id:1").RedisNil()
	mock.ExpectSet("users:id:1", data, time.Minute).SetVal("OK")

	inner := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.User, error) {
			return fromDB, nil
		},
	}

	repo := NewCachingUserRepository(rdb, time.Minute, inner, "users")
	out, err := repo.FindByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, fromDB, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingUserRepository_FindByID_CorruptedEntry(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	fromDB := &entity.User{ID: 1, Name: "Ann", Email: "ann@x.com"}
	data, err := json.Marshal(fromDB)
	require.NoError(t, err)

	mock.ExpectGet("users:id:1").SetVal("not-json")
	mock.ExpectDel("users:id:1").SetVal(1)
	mock.ExpectSet("users:id:1", data, time.Minute).SetVal("OK")

	inner := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.User, error) {
			return fromDB, nil
		},
	}

	repo := NewCachingUserRepository(rdb, time.Minute, inner, "users")
	out, err := repo.FindByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, fromDB, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingUserRepository_FindByID_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("users:id:1").RedisNil()

	expectedErr := errors.New("database error")
	inner := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.User, error) {
			return nil, expectedErr
		},
	}

	repo := NewCachingUserRepository(rdb, time.Minute, inner, "users")
	_, err := repo.FindByID(context.Background(), 1)

	assert.ErrorIs(t, err, expectedErr)
}

func TestCachingUserRepository_Update_InvalidatesCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel("users:id:1").SetVal(1)

	updated := false
	inner := &mockUserRepository{
		updateFn: func(ctx context.Context, u *entity.User) error {
			updated = true
			return nil
		},
	}

	repo := NewCachingUserRepository(rdb, time.Minute, inner, "users")
	err := repo.Update(context.Background(), &entity.User{ID: 1, Name: "Ann2", Email: "ann2@x.com"})

	require.NoError(t, err)
	assert.True(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingUserRepository_Update_InnerErrorSkipsInvalidation(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()

	expectedErr := errors.New("database error")
	inner := &mockUserRepository{
		updateFn: func(ctx context.Context, u *entity.User) error {
			return expectedErr
		},
	}

	repo := NewCachingUserRepository(rdb, time.Minute, inner, "users")
	err := repo.Update(context.Background(), &entity.User{ID: 1})

	assert.ErrorIs(t, err, expectedErr)
	assert.NoError(t, mock.ExpectationsWereMet(), "no cache operation should run on a failed update")
}

func TestCachingUserRepository_FindByEmail_NeverCached(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()

	expected := &entity.User{ID: 1, Email: "ann@x.com"}
	inner := &mockUserRepository{
		findByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
			return expected, nil
		},
	}

	repo := NewCachingUserRepository(rdb, time.Minute, inner, "users")
	out, err := repo.FindByEmail(context.Background(), "ann@x.com")

	require.NoError(t, err)
	assert.Equal(t, expected, out)
	assert.NoError(t, mock.ExpectationsWereMet(), "email lookups must not touch the cache")
}
