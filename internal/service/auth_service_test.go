package service

import (
	"context"
	"dating_app_backend/internal/model"
	"dating_app_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.auth.Register(context.Background(), validRegistration("Alice"))
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	assert.Equal(t, "alice", res.User.Username)
	assert.Equal(t, model.DefaultProfilePic, res.User.ProfilePic)
	assert.Equal(t, "Alice_ig", res.User.InstagramUsername)

	userID, err := env.auth.VerifyToken(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)
}

func TestAuthService_RegisterSwipeImageCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, n := range []int{0, 2, 4} {
		input := validRegistration("count_user")
		input.SwipeImages = make([]string, n)
		for i := range input.SwipeImages {
			input.SwipeImages[i] = "https://img.test/x.jpg"
		}

		_, err := env.auth.Register(ctx, input)
		var verr *util.ValidationError
		require.ErrorAs(t, err, &verr, "swipe images: %d", n)
		assert.Contains(t, verr.Fields, "swipeImages")
	}

	_, err := env.auth.Register(ctx, validRegistration("count_user"))
	assert.NoError(t, err)
}

func TestAuthService_RegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "bob")

	_, err := env.auth.Register(ctx, validRegistration("BOB"))
	assert.ErrorIs(t, err, util.ErrUsernameTaken)

	others, err := env.users.ListExcept(ctx, "")
	require.NoError(t, err)
	assert.Len(t, others, 1)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := map[string]func(*RegisterInput){
		"username":    func(in *RegisterInput) { in.Username = "bad name!" },
		"password":    func(in *RegisterInput) { in.Password = "123" },
		"country":     func(in *RegisterInput) { in.Country = "  " },
		"profileName": func(in *RegisterInput) { in.ProfileName = "ab" },
	}

	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			input := validRegistration("valid_user")
			mutate(&input)

			_, err := env.auth.Register(context.Background(), input)
			var verr *util.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, field)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	me := env.register(t, "carol")

	res, err := env.auth.Login(ctx, "Carol", "secret123")
	require.NoError(t, err)
	assert.Equal(t, me.ID, res.User.ID)

	_, err = env.auth.Login(ctx, "carol", "wrong-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = env.auth.Login(ctx, "nobody", "secret123")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = env.auth.Login(ctx, "", "")
	var verr *util.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAuthService_VerifyToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.VerifyToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, util.ErrInvalidToken)

	expired, err := util.GenerateJWT("user-1", env.cfg.JWT.Secret, -time.Minute)
	require.NoError(t, err)
	_, err = env.auth.VerifyToken(ctx, expired)
	assert.ErrorIs(t, err, util.ErrInvalidToken)

	foreign, err := util.GenerateJWT("user-1", "another-secret", time.Hour)
	require.NoError(t, err)
	_, err = env.auth.VerifyToken(ctx, foreign)
	assert.ErrorIs(t, err, util.ErrInvalidToken)
}
