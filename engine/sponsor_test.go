package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null"

	"github.com/teamvolt/binex/models"
	"github.com/teamvolt/binex/models/datatypes"
	"github.com/teamvolt/binex/types"
)

func sponsorTestConfig() *models.MLMConfig {
	mlm_config := testConfig("acme")
	mlm_config.SponsorLevels = datatypes.SponsorLevels{
		{Percentage: dec(10)},
		{Percentage: dec(5)},
	}

	return mlm_config
}

func seedMember(t *testing.T, store *MemoryStore, uid string, sponsor_uid string, directs int64) *models.Member {
	t.Helper()

	member := &models.Member{
		UID:            uid,
		CompanyID:      "acme",
		Role:           "member",
		DirectsCount:   directs,
		LastActivityAt: testNow,
	}
	if len(sponsor_uid) > 0 {
		member.SponsorUID = null.StringFrom(sponsor_uid)
	}
	require.NoError(t, store.CreateMember(member))

	return member
}

func TestSponsorMatchingPaysChain(t *testing.T) {
	e, store := newTestEngine(sponsorTestConfig())

	seedMember(t, store, "alice", "", 1)
	seedMember(t, store, "bob", "alice", 1)
	seedMember(t, store, "carol", "bob", 0)

	incomes, err := e.EvaluateSponsorMatching("acme", "carol", dec(100), testNow)
	require.NoError(t, err)
	require.Len(t, incomes, 2)

	assert.Equal(t, "bob", incomes[0].MemberUID)
	assert.Equal(t, "10", incomes[0].Amount.String())
	assert.Equal(t, types.IncomeSponsorMatching, incomes[0].IncomeType)
	assert.Equal(t, "carol", incomes[0].RelatedUID)

	assert.Equal(t, "alice", incomes[1].MemberUID)
	assert.Equal(t, "5", incomes[1].Amount.String())
}

func TestSponsorMatchingChainStopsAtRoot(t *testing.T) {
	e, store := newTestEngine(sponsorTestConfig())

	seedMember(t, store, "alice", "", 1)
	seedMember(t, store, "bob", "alice", 0)

	incomes, err := e.EvaluateSponsorMatching("acme", "bob", dec(100), testNow)
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.Equal(t, "alice", incomes[0].MemberUID)
}

func TestSponsorMatchingUnqualifiedLevelSkippedNotBroken(t *testing.T) {
	mlm_config := sponsorTestConfig()
	mlm_config.SponsorLevels[0].MinDirects = 5
	e, store := newTestEngine(mlm_config)

	seedMember(t, store, "alice", "", 1)
	seedMember(t, store, "bob", "alice", 1)
	seedMember(t, store, "carol", "bob", 0)

	incomes, err := e.EvaluateSponsorMatching("acme", "carol", dec(100), testNow)
	require.NoError(t, err)

	// Bob misses the directs threshold; the walk still reaches alice.
	require.Len(t, incomes, 1)
	assert.Equal(t, "alice", incomes[0].MemberUID)
	assert.Equal(t, "5", incomes[0].Amount.String())
}

func TestSponsorMatchingInactiveAncestorBreaksChain(t *testing.T) {
	mlm_config := sponsorTestConfig()
	mlm_config.SponsorAutoDisable = true
	mlm_config.SponsorInactiveDays = 30
	e, store := newTestEngine(mlm_config)

	seedMember(t, store, "alice", "", 1)
	bob := seedMember(t, store, "bob", "alice", 1)
	seedMember(t, store, "carol", "bob", 0)

	bob.LastActivityAt = testNow.Add(-45 * 24 * time.Hour)
	require.NoError(t, store.UpdateMember(bob))

	incomes, err := e.EvaluateSponsorMatching("acme", "carol", dec(100), testNow)
	require.NoError(t, err)

	// The inactive direct sponsor cuts the walk; alice is never reached.
	assert.Len(t, incomes, 0)
}

func TestSponsorMatchingAllOfQualification(t *testing.T) {
	mlm_config := sponsorTestConfig()
	mlm_config.SponsorLevels[0].MinDirects = 1
	mlm_config.SponsorLevels[0].MinTeamVolume = dec(1000)
	e, store := newTestEngine(mlm_config)

	seedMember(t, store, "alice", "", 1)
	seedMember(t, store, "bob", "alice", 1)
	seedMember(t, store, "carol", "bob", 0)

	seedNode(t, store, "acme", "bob", 300, 200)

	// Directs pass but team volume does not.
	incomes, err := e.EvaluateSponsorMatching("acme", "carol", dec(100), testNow)
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.Equal(t, "alice", incomes[0].MemberUID)
}
