package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/teamvolt/binex/models"
	"github.com/teamvolt/binex/types"
)

// Store is the persistence surface the engine runs against. The production
// implementation is GormStore; tests run on MemoryStore.
type Store interface {
	Config(company_id string) (*models.MLMConfig, error)

	Member(company_id string, uid string) (*models.Member, error)
	CreateMember(member *models.Member) error
	UpdateMember(member *models.Member) error

	Node(company_id string, id uint64) (*models.TreeNode, error)
	NodeByMember(company_id string, uid string) (*models.TreeNode, error)
	CreateNode(node *models.TreeNode) error
	// UpdateNode writes the node guarded by the LockVersion it was read at
	// and bumps the version; ErrVersionConflict when the guard misses.
	UpdateNode(node *models.TreeNode) error

	CreateIncome(income *models.IncomeTransaction) error
	// IncomeInWindow sums non-cancelled income of one type inside
	// [from, to).
	IncomeInWindow(company_id string, member_uid string, income_type types.IncomeType, from time.Time, to time.Time) (decimal.Decimal, error)
	// PairsTotal sums matched pairs over all non-cancelled binary matching
	// transactions of a member.
	PairsTotal(company_id string, member_uid string) (int64, error)
	// CreditIncome flips a pending transaction to credited and applies the
	// amount to the member wallet. Crediting the same uuid twice leaves the
	// wallet unchanged on the second application.
	CreditIncome(company_id string, id uuid.UUID) (*models.Wallet, error)

	Wallet(company_id string, member_uid string) (*models.Wallet, error)
}

type Engine struct {
	store Store
}

func New(store Store) *Engine {
	return &Engine{store: store}
}

func (e *Engine) Store() Store {
	return e.store
}
