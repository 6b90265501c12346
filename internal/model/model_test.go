package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairKey_IsDirectionless(t *testing.T) {
	assert.Equal(t, PairKey("a", "b"), PairKey("b", "a"))
	assert.Equal(t, "a:b", PairKey("b", "a"))
	assert.NotEqual(t, PairKey("a", "b"), PairKey("a", "c"))
}

func TestRequestStatus_Active(t *testing.T) {
	assert.True(t, RequestPending.Active())
	assert.True(t, RequestAccepted.Active())
	assert.False(t, RequestRejected.Active())
	assert.False(t, RequestUnmatched.Active())
}

func TestNewPublicProfile_ContactVisibility(t *testing.T) {
	u := &User{
		Username:             "alice",
		InstagramUsername:    "alice.ig",
		InstagramProfileLink: "https://instagram.com/alice.ig",
	}

	hidden := NewPublicProfile(u, false)
	assert.Empty(t, hidden.InstagramUsername)
	assert.Empty(t, hidden.InstagramProfileLink)
	assert.NotNil(t, hidden.SwipeImages)

	shown := NewPublicProfile(u, true)
	assert.Equal(t, "alice.ig", shown.InstagramUsername)
	assert.Equal(t, "https://instagram.com/alice.ig", shown.InstagramProfileLink)

	assert.Nil(t, NewPublicProfile(nil, true))
}

func TestNewRequestView_RevealsContactOnlyWhenAccepted(t *testing.T) {
	other := &User{InstagramUsername: "bob.ig"}

	pending := NewRequestView(&DatingRequest{Status: RequestPending}, other)
	assert.Empty(t, pending.Counterpart.InstagramUsername)

	accepted := NewRequestView(&DatingRequest{Status: RequestAccepted}, other)
	assert.Equal(t, "bob.ig", accepted.Counterpart.InstagramUsername)
}

func TestCounterpart(t *testing.T) {
	r := &DatingRequest{SenderID: "a", ReceiverID: "b"}
	assert.Equal(t, "b", r.Counterpart("a"))
	assert.Equal(t, "a", r.Counterpart("b"))
}

func TestStringList_ValueScan(t *testing.T) {
	v, err := StringList{"a", "b"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, v)

	v, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var l StringList
	require.NoError(t, l.Scan([]byte(`["x"]`)))
	assert.Equal(t, StringList{"x"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Equal(t, StringList{}, l)

	assert.Error(t, l.Scan(42))
}
