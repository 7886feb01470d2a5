package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamvolt/binex/models"
	"github.com/teamvolt/binex/types"
)

func pipelineTestConfig() *models.MLMConfig {
	mlm_config := testConfig("acme")
	mlm_config.DirectPercent = dec(10)
	mlm_config.RepurchasePercent = dec(5)

	return mlm_config
}

func TestProcessRegistrationFullFlow(t *testing.T) {
	e, store := newTestEngine(pipelineTestConfig())

	_, err := register(e, "acme", "alice", "", "", 0)
	require.NoError(t, err)

	result, err := register(e, "acme", "bob", "alice", "", 500)
	require.NoError(t, err)

	// No pair yet: the right leg is empty. Alice earns the direct referral.
	require.Len(t, result.Incomes, 1)
	assert.Equal(t, types.IncomeDirectReferral, result.Incomes[0].IncomeType)
	assert.Equal(t, "alice", result.Incomes[0].MemberUID)
	assert.Equal(t, "bob", result.Incomes[0].RelatedUID)
	assert.Equal(t, "50", result.Incomes[0].Amount.String())

	result, err = register(e, "acme", "carol", "alice", "", 300)
	require.NoError(t, err)

	// Now both legs carry volume: three pairs match on alice plus her
	// direct referral on carol's package.
	require.Len(t, result.Incomes, 2)

	binary := result.Incomes[0]
	assert.Equal(t, types.IncomeBinaryMatching, binary.IncomeType)
	assert.Equal(t, "alice", binary.MemberUID)
	assert.Equal(t, int64(3), binary.PairCount)
	assert.Equal(t, "150", binary.Amount.String())

	direct := result.Incomes[1]
	assert.Equal(t, types.IncomeDirectReferral, direct.IncomeType)
	assert.Equal(t, "30", direct.Amount.String())

	root, err := store.NodeByMember("acme", "alice")
	require.NoError(t, err)
	assert.Equal(t, "200", root.LeftVolume.String())
	assert.Equal(t, "0", root.RightVolume.String())
	assert.Equal(t, int64(3), root.TotalCount)

	alice, err := store.Member("acme", "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), alice.DirectsCount)
}

func TestProcessRegistrationBackfillsPreCreatedMember(t *testing.T) {
	e, store := newTestEngine(pipelineTestConfig())

	_, err := register(e, "acme", "alice", "", "", 0)
	require.NoError(t, err)

	// The API middleware creates the member row from jwt claims before the
	// registration event arrives, so the row carries no sponsor link yet.
	require.NoError(t, store.CreateMember(&models.Member{
		UID:            "bob",
		CompanyID:      "acme",
		Role:           "member",
		LastActivityAt: testNow,
	}))

	result, err := register(e, "acme", "bob", "alice", "", 500)
	require.NoError(t, err)

	require.Len(t, result.Incomes, 1)
	assert.Equal(t, types.IncomeDirectReferral, result.Incomes[0].IncomeType)
	assert.Equal(t, "alice", result.Incomes[0].MemberUID)
	assert.Equal(t, "50", result.Incomes[0].Amount.String())

	bob, err := store.Member("acme", "bob")
	require.NoError(t, err)
	assert.True(t, bob.HavingSponsor())
	assert.Equal(t, "alice", bob.SponsorUID.String)
	assert.Equal(t, "500", bob.PackageBV.String())

	alice, err := store.Member("acme", "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), alice.DirectsCount)
}

func TestProcessRegistrationDuplicateEvent(t *testing.T) {
	e, store := newTestEngine(pipelineTestConfig())

	_, err := register(e, "acme", "alice", "", "", 0)
	require.NoError(t, err)
	first, err := register(e, "acme", "bob", "alice", "", 500)
	require.NoError(t, err)

	// Redelivery of the same event neither re-places nor re-applies volume.
	second, err := register(e, "acme", "bob", "alice", "", 500)
	require.NoError(t, err)

	assert.Equal(t, first.Node.ID, second.Node.ID)
	assert.Len(t, second.Incomes, 0)

	root, err := store.NodeByMember("acme", "alice")
	require.NoError(t, err)
	assert.Equal(t, "500", root.LeftVolume.String())
	assert.Equal(t, int64(2), root.TotalCount)

	alice, err := store.Member("acme", "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), alice.DirectsCount)
}

func TestProcessRegistrationDuplicateRootEvent(t *testing.T) {
	e, store := newTestEngine(pipelineTestConfig())

	first, err := register(e, "acme", "alice", "", "", 100)
	require.NoError(t, err)

	second, err := register(e, "acme", "alice", "", "", 100)
	require.NoError(t, err)

	assert.Equal(t, first.Node.ID, second.Node.ID)
	assert.Len(t, second.Incomes, 0)

	root, err := store.NodeByMember("acme", "alice")
	require.NoError(t, err)
	assert.Equal(t, "100", root.OwnVolume.String())
}

func TestProcessPurchase(t *testing.T) {
	e, store := newTestEngine(pipelineTestConfig())

	_, err := register(e, "acme", "alice", "", "", 0)
	require.NoError(t, err)
	_, err = register(e, "acme", "bob", "alice", "", 500)
	require.NoError(t, err)

	result, err := e.ProcessPurchase(PurchaseEvent{
		CompanyID: "acme",
		MemberUID: "bob",
		AmountBV:  dec(200),
	}, testNow)
	require.NoError(t, err)

	require.Len(t, result.Incomes, 1)
	assert.Equal(t, types.IncomeRepurchase, result.Incomes[0].IncomeType)
	assert.Equal(t, "alice", result.Incomes[0].MemberUID)
	assert.Equal(t, "10", result.Incomes[0].Amount.String())

	root, err := store.NodeByMember("acme", "alice")
	require.NoError(t, err)
	assert.Equal(t, "700", root.LeftVolume.String())
}

func TestProcessPurchaseUnknownMember(t *testing.T) {
	e, _ := newTestEngine(pipelineTestConfig())

	_, err := e.ProcessPurchase(PurchaseEvent{
		CompanyID: "acme",
		MemberUID: "ghost",
		AmountBV:  dec(100),
	}, testNow)

	assert.Equal(t, ErrNotFound, err)
}

func TestProcessPurchaseNonPositiveVolume(t *testing.T) {
	e, _ := newTestEngine(pipelineTestConfig())

	_, err := register(e, "acme", "alice", "", "", 0)
	require.NoError(t, err)

	_, err = e.ProcessPurchase(PurchaseEvent{
		CompanyID: "acme",
		MemberUID: "alice",
		AmountBV:  decimal.Zero,
	}, testNow)

	require.Error(t, err)
	assert.IsType(t, &InvariantViolation{}, err)
}

func TestCreditIncomeExactlyOnce(t *testing.T) {
	e, store := newTestEngine(pipelineTestConfig())

	_, err := register(e, "acme", "alice", "", "", 0)
	require.NoError(t, err)
	result, err := register(e, "acme", "bob", "alice", "", 500)
	require.NoError(t, err)
	require.Len(t, result.Incomes, 1)

	income := result.Incomes[0]

	wallet, err := store.CreditIncome("acme", income.UUID)
	require.NoError(t, err)
	assert.Equal(t, "50", wallet.AvailableBalance.String())
	assert.Equal(t, "50", wallet.TotalEarned.String())

	// Redelivered crediting job is a no-op.
	wallet, err = store.CreditIncome("acme", income.UUID)
	require.NoError(t, err)
	assert.Equal(t, "50", wallet.AvailableBalance.String())
}
