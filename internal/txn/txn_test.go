package txn

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandle struct {
	commits   int
	rollbacks int
	commitErr error
}

func (h *fakeHandle) Commit() error {
	h.commits++
	return h.commitErr
}

func (h *fakeHandle) Rollback() error {
	h.rollbacks++
	return nil
}

type fakeBeginner struct {
	handles []*fakeHandle
	err     error
}

func (b *fakeBeginner) Begin(context.Context) (Handle, error) {
	if b.err != nil {
		return nil, b.err
	}
	h := &fakeHandle{}
	b.handles = append(b.handles, h)
	return h, nil
}

func TestTxLifecycle(t *testing.T) {
	var nilTx *Tx
	assert.Equal(t, NotStarted, nilTx.State())
	assert.False(t, nilTx.IsActive())

	m := NewManager(&fakeBeginner{}, nil)
	tx, err := m.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Active, tx.State())

	require.NoError(t, tx.Commit())
	assert.Equal(t, Committed, tx.State())
	assert.ErrorIs(t, tx.Commit(), ErrNotActive)
	assert.ErrorIs(t, tx.Abort(), ErrNotActive)
}

func TestWithinTransactionCommits(t *testing.T) {
	b := &fakeBeginner{}
	m := NewManager(b, nil)

	var seen *Tx
	err := m.WithinTransaction(context.Background(), func(ctx context.Context, tx *Tx) error {
		seen = tx
		assert.Same(t, tx, FromContext(ctx))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, Committed, seen.State())
	assert.Equal(t, 1, b.handles[0].commits)
	assert.Equal(t, 0, b.handles[0].rollbacks)
}

func TestWithinTransactionAbortsAndReturnsError(t *testing.T) {
	b := &fakeBeginner{}
	m := NewManager(b, nil)
	boom := errors.New("boom")

	var seen *Tx
	err := m.WithinTransaction(context.Background(), func(_ context.Context, tx *Tx) error {
		seen = tx
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Aborted, seen.State())
	assert.Equal(t, 0, b.handles[0].commits)
	assert.Equal(t, 1, b.handles[0].rollbacks)
}

func TestWithinTransactionAbortsOnPanic(t *testing.T) {
	b := &fakeBeginner{}
	m := NewManager(b, nil)

	assert.Panics(t, func() {
		_ = m.WithinTransaction(context.Background(), func(context.Context, *Tx) error {
			panic("boom")
		})
	})
	assert.Equal(t, 1, b.handles[0].rollbacks)
}

func TestNestedStartIsRejected(t *testing.T) {
	m := NewManager(&fakeBeginner{}, nil)

	err := m.WithinTransaction(context.Background(), func(ctx context.Context, _ *Tx) error {
		_, err := m.Start(ctx)
		return err
	})
	assert.ErrorIs(t, err, ErrNestedTransaction)
}

func TestCommitFailureAborts(t *testing.T) {
	b := &fakeBeginner{}
	m := NewManager(b, nil)
	tx, err := m.Start(context.Background())
	require.NoError(t, err)
	b.handles[0].commitErr = errors.New("disk full")

	assert.Error(t, tx.Commit())
	assert.Equal(t, Aborted, tx.State())
	assert.Equal(t, 1, b.handles[0].rollbacks)
}

func TestBeginFailure(t *testing.T) {
	m := NewManager(&fakeBeginner{err: errors.New("no connection")}, nil)
	_, err := m.Start(context.Background())
	assert.Error(t, err)
}
