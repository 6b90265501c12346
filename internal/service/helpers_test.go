package service

import (
	"context"
	"dating_app_backend/internal/config"
	"dating_app_backend/internal/model"
	"dating_app_backend/internal/repository"
	"dating_app_backend/pkg/database"
	"dating_app_backend/pkg/monitoring"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

type testEnv struct {
	cfg      *config.Config
	users    *repository.UserRepository
	requests *repository.RequestRepository
	messages *repository.MessageRepository

	auth  *AuthService
	user  *UserService
	match *MatchService
	chat  *ChatService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	monitoring.Init()

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "service-test-secret", ExpireTime: 5 * time.Hour},
		Database: config.DatabaseConfig{
			Driver:     "sqlite",
			SQLitePath: filepath.Join(t.TempDir(), "service.db"),
		},
	}
	db, err := database.InitDB(&cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	env := &testEnv{
		cfg:      cfg,
		users:    repository.NewUserRepository(db),
		requests: repository.NewRequestRepository(db),
		messages: repository.NewMessageRepository(db),
	}
	sessions := repository.NewSessionRepository(nil)

	env.auth = NewAuthService(env.users, sessions, cfg)
	env.user = NewUserService(env.users, env.requests, sessions, cfg)
	env.match = NewMatchService(env.users, env.requests, env.messages)
	env.match.Now = func() time.Time { return fixedNow }
	env.chat = NewChatService(env.messages, env.match)
	return env
}

func validRegistration(username string) RegisterInput {
	return RegisterInput{
		Username:             username,
		Password:             "secret123",
		ProfileName:          "Profile " + username,
		Bio:                  "hello there",
		Country:              "Netherlands",
		SwipeImages:          []string{"https://img.test/1.jpg", "https://img.test/2.jpg", "https://img.test/3.jpg"},
		InstagramUsername:    username + "_ig",
		InstagramProfileLink: "https://instagram.com/" + username,
	}
}

func (e *testEnv) register(t *testing.T, username string) *model.PublicProfile {
	t.Helper()
	res, err := e.auth.Register(context.Background(), validRegistration(username))
	require.NoError(t, err)
	return res.User
}

// matchUsers 建立 a -> b 的已接受请求
func (e *testEnv) matchUsers(t *testing.T, a, b string) *model.DatingRequest {
	t.Helper()
	ctx := context.Background()
	req, err := e.match.CreateRequest(ctx, a, b)
	require.NoError(t, err)
	accepted, err := e.match.Accept(ctx, b, req.ID)
	require.NoError(t, err)
	return accepted
}
