package user

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"txsignals/internal/dispatch"
	"txsignals/internal/stats"
)

// traceSnapshot captures everything observable about one scenario run.
// Serialized as indented JSON for golden comparison; map keys are sorted
// by encoding/json, so output is deterministic.
type traceSnapshot struct {
	Scenario   string         `json:"scenario"`
	Response   string         `json:"response"`
	Trace      []traceEvent   `json:"trace"`
	Stats      map[string]int `json:"stats"`
	UsersAfter []string       `json:"users_after"`
}

type traceEvent struct {
	Seq     int64  `json:"seq"`
	Event   string `json:"event"`
	UserID  int64  `json:"user_id"`
	Name    string `json:"name"`
	Request string `json:"request"`
}

// runScenario executes one creation request against a fresh fixture and
// returns the snapshot. A trace-recording hook runs after the notifier.
func runScenario(t *testing.T, scenario, token string, fail bool) *traceSnapshot {
	t.Helper()

	f := newFixture(t)
	ctx := context.Background()

	var trace []traceEvent
	f.registry.MustRegister(dispatch.KindUser, "trace-recorder", func(ctx context.Context, ev dispatch.UserCreated) error {
		trace = append(trace, traceEvent{
			Seq:     ev.Seq,
			Event:   "user.created",
			UserID:  ev.UserID,
			Name:    ev.Name,
			Request: ev.Request,
		})
		return nil
	})

	_, resp, err := f.service.Create(ctx, token, fail)
	if fail {
		require.Error(t, err)
	} else {
		require.NoError(t, err)
	}

	counts := make(map[string]int)
	for _, kind := range []string{stats.KindNotified, stats.KindCommitted, stats.KindRolledBack} {
		if n := f.stats.Count(kind); n > 0 {
			counts[kind] = n
		}
	}

	users, err := f.store.ListUsers(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Name)
	}

	return &traceSnapshot{
		Scenario:   scenario,
		Response:   resp,
		Trace:      trace,
		Stats:      counts,
		UsersAfter: names,
	}
}

// assertGolden compares the snapshot against testdata/golden/{name}.golden.
// Regenerate with: go test ./internal/user -update
func assertGolden(t *testing.T, name string, snapshot *traceSnapshot) {
	t.Helper()

	data, err := json.MarshalIndent(snapshot, "", "  ")
	require.NoError(t, err)
	data = append(data, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}

func TestGolden_CreateCommit(t *testing.T) {
	snapshot := runScenario(t, "create-commit", "flow-commit", false)
	assertGolden(t, "create-commit", snapshot)
}

func TestGolden_CreateRollback(t *testing.T) {
	snapshot := runScenario(t, "create-rollback", "flow-rollback", true)
	assertGolden(t, "create-rollback", snapshot)
}
