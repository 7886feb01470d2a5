package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamvolt/binex/models"
	"github.com/teamvolt/binex/models/datatypes"
	"github.com/teamvolt/binex/types"
)

func rankTestConfig() *models.MLMConfig {
	mlm_config := testConfig("acme")
	mlm_config.Ranks = datatypes.Ranks{
		{Level: 1, Title: "Bronze", MinTeamVolume: dec(100), Reward: dec(25), AutoAssign: true},
		{Level: 2, Title: "Silver", MinTeamVolume: dec(1000), MinDirects: 2, Reward: dec(100), AutoAssign: true},
		{Level: 3, Title: "Gold", MinTeamVolume: dec(100), AutoAssign: false},
	}

	return mlm_config
}

func TestEvaluateRankAssignsHighestQualifying(t *testing.T) {
	e, store := newTestEngine(rankTestConfig())

	seedMember(t, store, "alice", "", 2)
	seedNode(t, store, "acme", "alice", 900, 600)

	rank, income, err := e.EvaluateRank("acme", "alice", testNow)
	require.NoError(t, err)
	require.NotNil(t, rank)

	assert.Equal(t, int32(2), rank.Level)
	assert.Equal(t, "Silver", rank.Title)

	require.NotNil(t, income)
	assert.Equal(t, types.IncomeRankBonus, income.IncomeType)
	assert.Equal(t, "100", income.Amount.String())

	member, err := store.Member("acme", "alice")
	require.NoError(t, err)
	assert.Equal(t, int32(2), member.RankLevel)
}

func TestEvaluateRankNeverDowngrades(t *testing.T) {
	e, store := newTestEngine(rankTestConfig())

	member := seedMember(t, store, "alice", "", 0)
	member.RankLevel = 2
	require.NoError(t, store.UpdateMember(member))

	// Aggregates only support Bronze now; the member keeps Silver.
	seedNode(t, store, "acme", "alice", 100, 50)

	rank, income, err := e.EvaluateRank("acme", "alice", testNow)
	require.NoError(t, err)
	assert.Nil(t, rank)
	assert.Nil(t, income)

	member, err = store.Member("acme", "alice")
	require.NoError(t, err)
	assert.Equal(t, int32(2), member.RankLevel)
}

func TestEvaluateRankIdempotent(t *testing.T) {
	e, store := newTestEngine(rankTestConfig())

	seedMember(t, store, "alice", "", 0)
	seedNode(t, store, "acme", "alice", 100, 50)

	rank, income, err := e.EvaluateRank("acme", "alice", testNow)
	require.NoError(t, err)
	require.NotNil(t, rank)
	assert.Equal(t, int32(1), rank.Level)
	require.NotNil(t, income)

	rank, income, err = e.EvaluateRank("acme", "alice", testNow)
	require.NoError(t, err)
	assert.Nil(t, rank)
	assert.Nil(t, income)
}

func TestEvaluateRankSkipsManualRanks(t *testing.T) {
	mlm_config := rankTestConfig()
	mlm_config.Ranks = datatypes.Ranks{
		{Level: 3, Title: "Gold", MinTeamVolume: dec(100), AutoAssign: false},
	}
	e, store := newTestEngine(mlm_config)

	seedMember(t, store, "alice", "", 0)
	seedNode(t, store, "acme", "alice", 900, 600)

	rank, income, err := e.EvaluateRank("acme", "alice", testNow)
	require.NoError(t, err)
	assert.Nil(t, rank)
	assert.Nil(t, income)
}

func TestEvaluateRankLegVolumeThresholds(t *testing.T) {
	mlm_config := testConfig("acme")
	mlm_config.Ranks = datatypes.Ranks{
		{Level: 1, Title: "Balanced", MinLeftVolume: dec(200), MinRightVolume: dec(200), AutoAssign: true},
	}
	e, store := newTestEngine(mlm_config)

	seedMember(t, store, "alice", "", 0)
	seedNode(t, store, "acme", "alice", 500, 100)

	rank, _, err := e.EvaluateRank("acme", "alice", testNow)
	require.NoError(t, err)
	assert.Nil(t, rank)
}
