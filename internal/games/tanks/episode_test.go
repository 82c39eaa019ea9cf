package tanks

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/sim"
)

func TestPolicyByName(t *testing.T) {
	for _, name := range PolicyNames() {
		p, err := PolicyByName(name)
		require.NoError(t, err, name)
		rng := rand.New(rand.NewSource(1))
		for step := range 500 {
			assert.True(t, p(step, rng).Valid(), "%s step %d", name, step)
		}
	}

	_, err := PolicyByName("teleport")
	assert.Error(t, err)
}

func TestPatrolPolicyCycles(t *testing.T) {
	p, err := PolicyByName("patrol")
	require.NoError(t, err)
	assert.Equal(t, sim.ActionFireUp, p(0, nil))
	assert.Equal(t, sim.ActionFireRight, p(50, nil))
	assert.Equal(t, sim.ActionFireLeft, p(199, nil))
	assert.Equal(t, sim.ActionFireUp, p(200, nil))
}

func TestRunnerStepLimit(t *testing.T) {
	p, err := PolicyByName("random")
	require.NoError(t, err)
	r := NewRunner(50, 120, p)

	res, err := r.Run(11)
	require.NoError(t, err)
	assert.Equal(t, 120, res.Steps)
	assert.Equal(t, ReasonStepLimit, res.Reason)
	assert.Equal(t, 1, res.Stage)

	snap, err := sim.DecodeSnapshot(res.Snapshot)
	require.NoError(t, err)
	assert.Equal(t, uint64(120), snap.Tick)
	assert.InDelta(t, res.Score, snap.Score, 1e-9)
}

func TestRunnerIsDeterministic(t *testing.T) {
	p, err := PolicyByName("random")
	require.NoError(t, err)
	r := NewRunner(50, 800, p)

	a, err := r.Run(5)
	require.NoError(t, err)
	b, err := r.Run(5)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
