package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null"

	"github.com/teamvolt/binex/models"
)

func TestApplyVolumeDeltaPropagatesToRoot(t *testing.T) {
	e, store := newTestEngine(testConfig("acme"))

	root, err := e.Place("acme", "alice", "", null.String{})
	require.NoError(t, err)
	bob, err := e.Place("acme", "bob", "alice", null.String{})
	require.NoError(t, err)
	carol, err := e.Place("acme", "carol", "bob", null.String{})
	require.NoError(t, err)

	ancestors, err := e.ApplyVolumeDelta("acme", "carol", dec(100))
	require.NoError(t, err)
	assert.Equal(t, []uint64{bob.ID, root.ID}, ancestors)

	carol, err = store.Node("acme", carol.ID)
	require.NoError(t, err)
	assert.Equal(t, "100", carol.OwnVolume.String())
	assert.Equal(t, "100", carol.TotalVolume.String())

	bob, err = store.Node("acme", bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "0", bob.OwnVolume.String())
	assert.Equal(t, "100", bob.LeftVolume.String())
	assert.True(t, bob.ConsistentVolumes())

	root, err = store.Node("acme", root.ID)
	require.NoError(t, err)
	assert.Equal(t, "100", root.LeftVolume.String())
	assert.Equal(t, "0", root.RightVolume.String())
	assert.True(t, root.ConsistentVolumes())
}

func TestApplyVolumeDeltaRejectsNegative(t *testing.T) {
	e, _ := newTestEngine(testConfig("acme"))

	_, err := e.Place("acme", "alice", "", null.String{})
	require.NoError(t, err)

	_, err = e.ApplyVolumeDelta("acme", "alice", dec(-10))
	require.Error(t, err)
	assert.IsType(t, &InvariantViolation{}, err)
}

func TestApplyVolumeDeltaRejectsExcessPrecision(t *testing.T) {
	e, _ := newTestEngine(testConfig("acme"))

	_, err := e.Place("acme", "alice", "", null.String{})
	require.NoError(t, err)

	delta, _ := decimal.NewFromString("10.123")
	_, err = e.ApplyVolumeDelta("acme", "alice", delta)
	require.Error(t, err)
	assert.IsType(t, &InvariantViolation{}, err)
}

func TestApplyCountDelta(t *testing.T) {
	e, store := newTestEngine(testConfig("acme"))

	root, err := e.Place("acme", "alice", "", null.String{})
	require.NoError(t, err)
	bob, err := e.Place("acme", "bob", "alice", null.String{})
	require.NoError(t, err)
	carol, err := e.Place("acme", "carol", "bob", null.String{})
	require.NoError(t, err)

	require.NoError(t, e.ApplyCountDelta("acme", bob, 1))
	require.NoError(t, e.ApplyCountDelta("acme", carol, 1))

	root, err = store.Node("acme", root.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), root.LeftCount)
	assert.Equal(t, int64(0), root.RightCount)
	assert.Equal(t, int64(3), root.TotalCount)

	bob, err = store.Node("acme", bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), bob.LeftCount)
	assert.Equal(t, int64(2), bob.TotalCount)
}

func TestUpdateNodeWithRetryRecoversFromConflict(t *testing.T) {
	e, store := newTestEngine(testConfig("acme"))

	node, err := e.Place("acme", "alice", "", null.String{})
	require.NoError(t, err)

	interfered := false

	_, err = e.updateNodeWithRetry("acme", node.ID, func(n *models.TreeNode) error {
		if !interfered {
			interfered = true

			// Concurrent writer bumps the version between our read and write.
			fresh, err := store.Node("acme", node.ID)
			require.NoError(t, err)
			require.NoError(t, store.UpdateNode(fresh))
		}

		n.OwnVolume = n.OwnVolume.Add(dec(10))
		n.TotalVolume = n.TotalVolume.Add(dec(10))
		return nil
	})
	require.NoError(t, err)

	fresh, err := store.Node("acme", node.ID)
	require.NoError(t, err)
	assert.Equal(t, "10", fresh.OwnVolume.String())
}
