package account_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fakeminder/fakeminder/internal/account"
	"github.com/fakeminder/fakeminder/internal/config"
)

func testDirectory(t *testing.T, users map[string]config.User) *account.Directory {
	t.Helper()
	return account.NewDirectory(&config.Site{
		SiteMinder: config.SiteMinder{SessionExpiryMinutes: 20, MaxLoginAttempts: 3},
		Users:      users,
	})
}

func TestDirectory_Lookup(t *testing.T) {
	t.Parallel()

	dir := testDirectory(t, map[string]config.User{
		"bob": {Password: "plain:test1234"},
	})

	user, ok := dir.Lookup("bob")
	require.True(t, ok)
	assert.Equal(t, "bob", user.Name)

	_, ok = dir.Lookup("mallory")
	assert.False(t, ok)
}

func TestUser_VerifyPassword(t *testing.T) {
	t.Parallel()

	t.Run("plain scheme", func(t *testing.T) {
		t.Parallel()

		dir := testDirectory(t, map[string]config.User{
			"bob": {Password: "plain:test1234"},
		})
		user, _ := dir.Lookup("bob")

		assert.True(t, user.VerifyPassword("test1234"))
		assert.False(t, user.VerifyPassword("wrong"))
		assert.False(t, user.VerifyPassword(""))
	})

	t.Run("unprefixed reference compared as plaintext", func(t *testing.T) {
		t.Parallel()

		dir := testDirectory(t, map[string]config.User{
			"bob": {Password: "test1234"},
		})
		user, _ := dir.Lookup("bob")

		assert.True(t, user.VerifyPassword("test1234"))
		assert.False(t, user.VerifyPassword("plain:test1234"))
	})

	t.Run("bcrypt scheme", func(t *testing.T) {
		t.Parallel()

		hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
		require.NoError(t, err)

		dir := testDirectory(t, map[string]config.User{
			"bob": {Password: "bcrypt:" + string(hash)},
		})
		user, _ := dir.Lookup("bob")

		assert.True(t, user.VerifyPassword("s3cret"))
		assert.False(t, user.VerifyPassword("wrong"))
	})
}

func TestUser_AttemptCounter(t *testing.T) {
	t.Parallel()

	t.Run("failures accumulate until lockout", func(t *testing.T) {
		t.Parallel()

		dir := testDirectory(t, map[string]config.User{
			"bob": {Password: "plain:test1234"},
		})
		user, _ := dir.Lookup("bob")

		assert.False(t, user.Locked())
		assert.Equal(t, 1, user.RecordFailure())
		assert.Equal(t, 2, user.RecordFailure())
		assert.False(t, user.Locked())
		assert.Equal(t, 3, user.RecordFailure())
		assert.True(t, user.Locked())
	})

	t.Run("reset clears the counter", func(t *testing.T) {
		t.Parallel()

		dir := testDirectory(t, map[string]config.User{
			"bob": {Password: "plain:test1234"},
		})
		user, _ := dir.Lookup("bob")

		user.RecordFailure()
		user.RecordFailure()
		user.ResetAttempts()
		assert.Equal(t, 0, user.Attempts())
		assert.False(t, user.Locked())
	})

	t.Run("per-user threshold overrides the default", func(t *testing.T) {
		t.Parallel()

		dir := testDirectory(t, map[string]config.User{
			"bob": {Password: "plain:test1234", LockoutThreshold: 1},
		})
		user, _ := dir.Lookup("bob")

		user.RecordFailure()
		assert.True(t, user.Locked())
	})

	t.Run("negative threshold disables lockout", func(t *testing.T) {
		t.Parallel()

		dir := testDirectory(t, map[string]config.User{
			"bob": {Password: "plain:test1234", LockoutThreshold: -1},
		})
		user, _ := dir.Lookup("bob")

		for range 10 {
			user.RecordFailure()
		}
		assert.False(t, user.Locked())
	})

	t.Run("concurrent failures never lose increments", func(t *testing.T) {
		t.Parallel()

		dir := testDirectory(t, map[string]config.User{
			"bob": {Password: "plain:test1234", LockoutThreshold: 1000},
		})
		user, _ := dir.Lookup("bob")

		const goroutines = 100
		var wg sync.WaitGroup
		wg.Add(goroutines)
		for range goroutines {
			go func() {
				defer wg.Done()
				user.RecordFailure()
			}()
		}
		wg.Wait()

		assert.Equal(t, goroutines, user.Attempts())
	})
}
