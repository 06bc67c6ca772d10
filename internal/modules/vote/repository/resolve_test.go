package repository

import (
	"testing"

	"github.com/torcriss/CocoReddit-sub000/internal/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	up := &entity.Vote{VoteType: entity.Upvote}
	down := &entity.Vote{VoteType: entity.Downvote}

	assert.Equal(t, ActionInsert, Resolve(nil, entity.Upvote))
	assert.Equal(t, ActionInsert, Resolve(nil, entity.Downvote))

	assert.Equal(t, ActionRemove, Resolve(up, entity.Upvote))
	assert.Equal(t, ActionRemove, Resolve(down, entity.Downvote))

	assert.Equal(t, ActionFlip, Resolve(up, entity.Downvote))
	assert.Equal(t, ActionFlip, Resolve(down, entity.Upvote))
}

// ledger simulates the vote table for one target, applying Resolve the way
// Cast does and re-summing after every mutation.
type ledger struct {
	votes map[uuid.UUID]int
}

func newLedger() *ledger {
	return &ledger{votes: make(map[uuid.UUID]int)}
}

func (l *ledger) cast(userID uuid.UUID, voteType int) (removed bool, total int) {
	var existing *entity.Vote
	if vt, ok := l.votes[userID]; ok {
		existing = &entity.Vote{UserID: userID, VoteType: vt}
	}

	switch Resolve(existing, voteType) {
	case ActionInsert, ActionFlip:
		l.votes[userID] = voteType
	case ActionRemove:
		delete(l.votes, userID)
		removed = true
	}

	for _, vt := range l.votes {
		total += vt
	}
	return removed, total
}

func TestCastSequenceTotals(t *testing.T) {
	l := newLedger()
	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()

	_, total := l.cast(alice, entity.Upvote)
	assert.Equal(t, 1, total)

	_, total = l.cast(bob, entity.Upvote)
	assert.Equal(t, 2, total)

	_, total = l.cast(carol, entity.Downvote)
	assert.Equal(t, 1, total)

	// Flip: alice switches to downvote, swinging the total by 2.
	_, total = l.cast(alice, entity.Downvote)
	assert.Equal(t, -1, total)

	// Toggle off: bob repeats his upvote.
	removed, total := l.cast(bob, entity.Upvote)
	assert.True(t, removed)
	assert.Equal(t, -2, total)
}

func TestCastToggleRoundTrip(t *testing.T) {
	l := newLedger()
	user := uuid.New()

	_, afterOn := l.cast(user, entity.Upvote)
	removed, afterOff := l.cast(user, entity.Upvote)

	assert.Equal(t, 1, afterOn)
	assert.True(t, removed)
	assert.Equal(t, 0, afterOff)
}

func TestCastOneVotePerUser(t *testing.T) {
	l := newLedger()
	user := uuid.New()

	l.cast(user, entity.Upvote)
	l.cast(user, entity.Downvote)
	_, total := l.cast(user, entity.Upvote)

	assert.Equal(t, 1, total)
	assert.Len(t, l.votes, 1)
}
