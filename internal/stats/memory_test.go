package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RecordAndCount(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Record(ctx, Event{Kind: KindNotified, Request: "req-1", UserName: "req-11"}))
	require.NoError(t, m.Record(ctx, Event{Kind: KindRolledBack, Request: "req-1"}))
	require.NoError(t, m.Record(ctx, Event{Kind: KindNotified, Request: "req-2", UserName: "req-21"}))

	assert.Equal(t, 2, m.Count(KindNotified))
	assert.Equal(t, 1, m.Count(KindRolledBack))
	assert.Equal(t, 0, m.Count(KindCommitted))
}

func TestMemory_EventsOrderedAndCopied(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Record(ctx, Event{Kind: KindNotified, Request: "a"}))
	require.NoError(t, m.Record(ctx, Event{Kind: KindCommitted, Request: "a"}))

	events := m.Events()
	require.Len(t, events, 2)
	assert.Equal(t, KindNotified, events[0].Kind)
	assert.Equal(t, KindCommitted, events[1].Kind)

	// Mutating the returned slice must not affect the recorder.
	events[0].Kind = "tampered"
	assert.Equal(t, KindNotified, m.Events()[0].Kind)
}

func TestRedisRecorder_NilSafe(t *testing.T) {
	var r *RedisRecorder
	assert.NoError(t, r.Record(context.Background(), Event{Kind: KindNotified}))

	r = NewRedisRecorder(nil)
	assert.NoError(t, r.Record(context.Background(), Event{Kind: KindNotified}))
}
