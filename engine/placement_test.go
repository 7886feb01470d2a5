package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null"

	"github.com/teamvolt/binex/types"
)

func TestPlaceRoot(t *testing.T) {
	e, _ := newTestEngine(testConfig("acme"))

	node, err := e.Place("acme", "alice", "", null.String{})
	require.NoError(t, err)

	assert.False(t, node.ParentID.Valid)
	assert.False(t, node.ParentSide.Valid)
	assert.Equal(t, int64(1), node.TotalCount)
}

func TestPlaceIdempotent(t *testing.T) {
	e, _ := newTestEngine(testConfig("acme"))

	first, err := e.Place("acme", "alice", "", null.String{})
	require.NoError(t, err)

	second, err := e.Place("acme", "alice", "", null.String{})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestPlaceFillsLeftBeforeRight(t *testing.T) {
	e, store := newTestEngine(testConfig("acme"))

	root, err := e.Place("acme", "alice", "", null.String{})
	require.NoError(t, err)

	bob, err := e.Place("acme", "bob", "alice", null.String{})
	require.NoError(t, err)
	assert.Equal(t, types.SideLeft, bob.ParentSide.String)

	carol, err := e.Place("acme", "carol", "alice", null.String{})
	require.NoError(t, err)
	assert.Equal(t, types.SideRight, carol.ParentSide.String)

	root, err = store.Node("acme", root.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, root.LeftID.Uint64)
	assert.Equal(t, carol.ID, root.RightID.Uint64)
}

func TestPlaceAutoSpillover(t *testing.T) {
	e, _ := newTestEngine(testConfig("acme"))

	_, err := e.Place("acme", "alice", "", null.String{})
	require.NoError(t, err)

	bob, err := e.Place("acme", "bob", "alice", null.String{})
	require.NoError(t, err)
	_, err = e.Place("acme", "carol", "alice", null.String{})
	require.NoError(t, err)

	// Both sponsor legs are occupied: the new member spills breadth-first
	// down the weak leg, left slot first.
	dave, err := e.Place("acme", "dave", "alice", null.String{})
	require.NoError(t, err)

	assert.Equal(t, bob.ID, dave.ParentID.Uint64)
	assert.Equal(t, types.SideLeft, dave.ParentSide.String)
}

func TestPlaceRequestedSideOccupiedSpillsDownSameLeg(t *testing.T) {
	e, _ := newTestEngine(testConfig("acme"))

	_, err := e.Place("acme", "alice", "", null.String{})
	require.NoError(t, err)

	carol, err := e.Place("acme", "carol", "alice", null.StringFrom(types.SideRight))
	require.NoError(t, err)
	assert.Equal(t, types.SideRight, carol.ParentSide.String)

	dave, err := e.Place("acme", "dave", "alice", null.StringFrom(types.SideRight))
	require.NoError(t, err)

	assert.Equal(t, carol.ID, dave.ParentID.Uint64)
	assert.Equal(t, types.SideLeft, dave.ParentSide.String)
}

func TestPlaceManualFallsBackToFreeLeg(t *testing.T) {
	mlm_config := testConfig("acme")
	mlm_config.SpilloverMode = types.SpilloverManual
	e, _ := newTestEngine(mlm_config)

	_, err := e.Place("acme", "alice", "", null.String{})
	require.NoError(t, err)
	_, err = e.Place("acme", "bob", "alice", null.StringFrom(types.SideLeft))
	require.NoError(t, err)

	carol, err := e.Place("acme", "carol", "alice", null.StringFrom(types.SideLeft))
	require.NoError(t, err)

	assert.Equal(t, types.SideRight, carol.ParentSide.String)
}

func TestPlaceManualNoAvailableSlot(t *testing.T) {
	mlm_config := testConfig("acme")
	mlm_config.SpilloverMode = types.SpilloverManual
	e, _ := newTestEngine(mlm_config)

	_, err := e.Place("acme", "alice", "", null.String{})
	require.NoError(t, err)
	_, err = e.Place("acme", "bob", "alice", null.String{})
	require.NoError(t, err)
	_, err = e.Place("acme", "carol", "alice", null.String{})
	require.NoError(t, err)

	_, err = e.Place("acme", "dave", "alice", null.StringFrom(types.SideLeft))
	assert.Equal(t, ErrNoAvailableSlot, err)
}

func TestPlaceUnknownSponsor(t *testing.T) {
	e, _ := newTestEngine(testConfig("acme"))

	_, err := e.Place("acme", "alice", "", null.String{})
	require.NoError(t, err)

	_, err = e.Place("acme", "bob", "nobody", null.String{})
	require.Error(t, err)
	assert.Equal(t, "placement.sponsor_not_in_tree", err.Error())
}

func TestPlaceInvalidSide(t *testing.T) {
	e, _ := newTestEngine(testConfig("acme"))

	_, err := e.Place("acme", "alice", "", null.String{})
	require.NoError(t, err)

	_, err = e.Place("acme", "bob", "alice", null.StringFrom("up"))
	require.Error(t, err)
	assert.Equal(t, "placement.invalid_side", err.Error())
}

func TestWeakSidePolicies(t *testing.T) {
	e, store := newTestEngine(testConfig("acme"))

	_, err := e.Place("acme", "alice", "", null.String{})
	require.NoError(t, err)
	bob, err := e.Place("acme", "bob", "alice", null.String{})
	require.NoError(t, err)
	carol, err := e.Place("acme", "carol", "alice", null.String{})
	require.NoError(t, err)

	// Right leg is lighter: the smaller policy spills there.
	_, err = e.ApplyVolumeDelta("acme", "bob", dec(300))
	require.NoError(t, err)
	_, err = e.ApplyVolumeDelta("acme", "carol", dec(100))
	require.NoError(t, err)

	dave, err := e.Place("acme", "dave", "alice", null.String{})
	require.NoError(t, err)
	assert.Equal(t, carol.ID, dave.ParentID.Uint64)

	mlm_config := testConfig("acme")
	mlm_config.BinaryRule.WeakLeg = types.WeakLegLeft
	store.SetConfig(mlm_config)

	erin, err := e.Place("acme", "erin", "alice", null.String{})
	require.NoError(t, err)
	assert.Equal(t, bob.ID, erin.ParentID.Uint64)
}
