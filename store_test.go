package session_test

import (
	"testing"

	session "github.com/Hot00Sauce/go-session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreFreshStateIsAnonymous(t *testing.T) {
	store := session.NewStore()

	state := store.Current()
	assert.False(t, state.IsAuthenticated())

	user, ok := state.User()
	assert.Nil(t, user)
	assert.False(t, ok)
}

func TestStoreSetRoundTrip(t *testing.T) {
	store := session.NewStore()
	u := &session.User{ID: uuid.New(), Email: "u1@example.com"}

	store.Set(u)

	state := store.Current()
	assert.True(t, state.IsAuthenticated())

	got, ok := state.User()
	require.True(t, ok)
	assert.Equal(t, u, got)
}

func TestStoreSetNilEqualsClear(t *testing.T) {
	store := session.NewStore()
	store.Set(&session.User{ID: uuid.New()})

	store.Set(nil)

	assert.False(t, store.Current().IsAuthenticated())
}

func TestStoreSetThenClearMatchesFresh(t *testing.T) {
	store := session.NewStore()
	fresh := session.NewStore()

	store.Set(&session.User{ID: uuid.New(), Email: "u1@example.com"})
	store.Clear()

	assert.Equal(t, fresh.Current(), store.Current())
}

func TestStoreClearIdempotent(t *testing.T) {
	store := session.NewStore()

	notified := 0
	cancel := store.Subscribe(func(session.State) {
		notified++
	})
	defer cancel()

	store.Clear()
	store.Clear()

	assert.False(t, store.Current().IsAuthenticated())
	assert.Zero(t, notified, "clearing an already cleared store is not a transition")
}

func TestStoreSubscribeObservesTransitions(t *testing.T) {
	store := session.NewStore()

	var seen []bool
	cancel := store.Subscribe(func(s session.State) {
		seen = append(seen, s.IsAuthenticated())
	})

	store.Set(&session.User{ID: uuid.New()})
	store.Clear()

	require.Len(t, seen, 2)
	assert.True(t, seen[0])
	assert.False(t, seen[1])

	cancel()
	cancel() // idempotent

	store.Set(&session.User{ID: uuid.New()})
	assert.Len(t, seen, 2, "cancelled subscriber must not be notified")
}

func TestStoreSubscriberCanReadCurrent(t *testing.T) {
	store := session.NewStore()

	var observed session.State
	store.Subscribe(func(session.State) {
		// reading back through the store must not deadlock
		observed = store.Current()
	})

	u := &session.User{ID: uuid.New()}
	store.Set(u)

	got, ok := observed.User()
	require.True(t, ok)
	assert.Equal(t, u, got)
}

// The invariant of the whole package: no sequence of operations can
// make the authenticated flag disagree with user presence.
func TestStoreInvariantAcrossOperationSequences(t *testing.T) {
	store := session.NewStore()
	u1 := &session.User{ID: uuid.New(), Email: "u1@example.com"}
	u2 := &session.User{ID: uuid.New(), Email: "u2@example.com"}

	ops := []func(){
		func() { store.Set(u1) },
		func() { store.Set(u2) },
		func() { store.Clear() },
		func() { store.Set(nil) },
		func() { store.Clear() },
		func() { store.Set(u1) },
	}

	check := func() {
		state := store.Current()
		_, present := state.User()
		assert.Equal(t, present, state.IsAuthenticated())
	}

	check()
	for _, op := range ops {
		op()
		check()
	}
}
