package service

import (
	"context"
	"dating_app_backend/internal/model"
	"dating_app_backend/internal/util"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchService_CreateRequestRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "alice")
	b := env.register(t, "bobby")

	_, err := env.match.CreateRequest(ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, util.ErrSelfTarget)

	_, err = env.match.CreateRequest(ctx, a.ID, "missing-user")
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	req, err := env.match.CreateRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestPending, req.Status)
	assert.Equal(t, a.ID, req.SenderID)
	assert.Equal(t, b.ID, req.ReceiverID)

	_, err = env.match.CreateRequest(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, util.ErrDuplicatePending)
	_, err = env.match.CreateRequest(ctx, b.ID, a.ID)
	assert.ErrorIs(t, err, util.ErrDuplicatePending)

	_, err = env.match.Accept(ctx, b.ID, req.ID)
	require.NoError(t, err)

	_, err = env.match.CreateRequest(ctx, b.ID, a.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyMatched)
}

func TestMatchService_RespondRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "carol")
	b := env.register(t, "dave1")
	c := env.register(t, "erin1")

	req, err := env.match.CreateRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)

	_, err = env.match.Accept(ctx, a.ID, req.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
	_, err = env.match.Accept(ctx, c.ID, req.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
	_, err = env.match.Accept(ctx, b.ID, "missing-request")
	assert.ErrorIs(t, err, util.ErrRequestNotFound)
	_, err = env.match.Respond(ctx, b.ID, req.ID, Decision("maybe"))
	var verr *util.ValidationError
	assert.ErrorAs(t, err, &verr)

	accepted, err := env.match.Accept(ctx, b.ID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestAccepted, accepted.Status)
	require.NotNil(t, accepted.AcceptedAt)
	assert.WithinDuration(t, fixedNow, *accepted.AcceptedAt, time.Second)
	assert.Nil(t, accepted.RejectedAt)

	_, err = env.match.Reject(ctx, b.ID, req.ID)
	assert.ErrorIs(t, err, util.ErrInvalidState)
	_, err = env.match.Accept(ctx, b.ID, req.ID)
	assert.ErrorIs(t, err, util.ErrInvalidState)
}

func TestMatchService_RejectAllowsNewRequest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "frank")
	b := env.register(t, "grace")

	req, err := env.match.CreateRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)

	rejected, err := env.match.Reject(ctx, b.ID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestRejected, rejected.Status)
	require.NotNil(t, rejected.RejectedAt)
	assert.Nil(t, rejected.AcceptedAt)

	matched, err := env.match.IsMatched(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, matched)

	again, err := env.match.CreateRequest(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, req.ID, again.ID)
}

func TestMatchService_IsMatchedSymmetric(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "heidi")
	b := env.register(t, "ivan1")

	check := func(want bool) {
		ab, err := env.match.IsMatched(ctx, a.ID, b.ID)
		require.NoError(t, err)
		ba, err := env.match.IsMatched(ctx, b.ID, a.ID)
		require.NoError(t, err)
		assert.Equal(t, ab, ba)
		assert.Equal(t, want, ab)
	}

	check(false)
	req, err := env.match.CreateRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	check(false)
	_, err = env.match.Accept(ctx, b.ID, req.ID)
	require.NoError(t, err)
	check(true)
	_, err = env.match.Unmatch(ctx, b.ID, a.ID)
	require.NoError(t, err)
	check(false)

	self, err := env.match.IsMatched(ctx, a.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, self)
}

func TestMatchService_CancelRequest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "judy1")
	b := env.register(t, "kevin")

	req, err := env.match.CreateRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, env.match.CancelRequest(ctx, b.ID, req.ID), util.ErrPermissionDenied)
	require.NoError(t, env.match.CancelRequest(ctx, a.ID, req.ID))
	assert.ErrorIs(t, env.match.CancelRequest(ctx, a.ID, req.ID), util.ErrRequestNotFound)

	_, err = env.match.Accept(ctx, b.ID, req.ID)
	assert.ErrorIs(t, err, util.ErrRequestNotFound)

	accepted := env.matchUsers(t, a.ID, b.ID)
	assert.ErrorIs(t, env.match.CancelRequest(ctx, a.ID, accepted.ID), util.ErrInvalidState)
}

func TestMatchService_Unmatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "laura")
	b := env.register(t, "mike1")

	_, err := env.match.Unmatch(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, util.ErrNoActiveMatch)

	env.matchUsers(t, a.ID, b.ID)

	unmatched, err := env.match.Unmatch(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestUnmatched, unmatched.Status)
	require.NotNil(t, unmatched.UnmatchedAt)
	assert.NotNil(t, unmatched.AcceptedAt)

	_, err = env.match.Unmatch(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, util.ErrNoActiveMatch)

	// 解除匹配后可重新开始
	_, err = env.match.CreateRequest(ctx, a.ID, b.ID)
	assert.NoError(t, err)
}

func TestMatchService_Listings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "nancy")
	b := env.register(t, "oscar")
	c := env.register(t, "peggy")

	_, err := env.match.CreateRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	env.matchUsers(t, c.ID, a.ID)

	sent, err := env.match.ListSent(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	require.NotNil(t, sent[0].Counterpart)
	assert.Equal(t, "oscar", sent[0].Counterpart.Username)
	assert.Empty(t, sent[0].Counterpart.InstagramUsername)

	received, err := env.match.ListReceived(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "peggy", received[0].Counterpart.Username)
	assert.Equal(t, "peggy_ig", received[0].Counterpart.InstagramUsername)

	matchesA, err := env.match.ListMatches(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, matchesA, 1)
	assert.Equal(t, c.ID, matchesA[0].ID)
	assert.False(t, matchesA[0].IsInitiator)
	assert.Equal(t, "peggy_ig", matchesA[0].InstagramUsername)
	assert.NotNil(t, matchesA[0].MatchedAt)

	matchesC, err := env.match.ListMatches(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, matchesC, 1)
	assert.Equal(t, a.ID, matchesC[0].ID)
	assert.True(t, matchesC[0].IsInitiator)

	matchesB, err := env.match.ListMatches(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, matchesB)
}

func TestMatchService_ConcurrentCreateRequest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "quinn")
	b := env.register(t, "rupert")

	const workers = 6
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sender, receiver := a.ID, b.ID
			if i%2 == 1 {
				sender, receiver = b.ID, a.ID
			}
			_, errs[i] = env.match.CreateRequest(ctx, sender, receiver)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, util.ErrDuplicatePending)
	}
	assert.Equal(t, 1, succeeded)

	count, err := env.requests.CountActiveBetween(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
