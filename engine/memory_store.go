package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/teamvolt/binex/models"
	"github.com/teamvolt/binex/types"
)

// MemoryStore keeps everything in process. It backs the engine tests and
// local development without a database.
type MemoryStore struct {
	mutex sync.Mutex

	next_node_id   uint64
	next_income_id uint64

	configs         map[string]*models.MLMConfig
	members         map[string]*models.Member
	nodes           map[uint64]*models.TreeNode
	nodes_by_member map[string]uint64
	incomes         map[string]*models.IncomeTransaction
	income_order    []string
	wallets         map[string]*models.Wallet
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		configs:         make(map[string]*models.MLMConfig),
		members:         make(map[string]*models.Member),
		nodes:           make(map[uint64]*models.TreeNode),
		nodes_by_member: make(map[string]uint64),
		incomes:         make(map[string]*models.IncomeTransaction),
		income_order:    make([]string, 0),
		wallets:         make(map[string]*models.Wallet),
	}
}

func memberKey(company_id string, uid string) string {
	return company_id + ":" + uid
}

func (s *MemoryStore) SetConfig(mlm_config *models.MLMConfig) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	snapshot := *mlm_config
	s.configs[mlm_config.CompanyID] = &snapshot
}

func (s *MemoryStore) Config(company_id string) (*models.MLMConfig, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	mlm_config, found := s.configs[company_id]
	if !found {
		return nil, ErrNotFound
	}

	snapshot := *mlm_config
	return &snapshot, nil
}

func (s *MemoryStore) Member(company_id string, uid string) (*models.Member, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	member, found := s.members[memberKey(company_id, uid)]
	if !found {
		return nil, ErrNotFound
	}

	snapshot := *member
	return &snapshot, nil
}

func (s *MemoryStore) CreateMember(member *models.Member) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	key := memberKey(member.CompanyID, member.UID)
	if _, found := s.members[key]; found {
		return errors.New("member already exists")
	}

	member.ID = uint64(len(s.members) + 1)
	snapshot := *member
	s.members[key] = &snapshot

	return nil
}

func (s *MemoryStore) UpdateMember(member *models.Member) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	key := memberKey(member.CompanyID, member.UID)
	if _, found := s.members[key]; !found {
		return ErrNotFound
	}

	snapshot := *member
	s.members[key] = &snapshot

	return nil
}

func (s *MemoryStore) Node(company_id string, id uint64) (*models.TreeNode, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	node, found := s.nodes[id]
	if !found || node.CompanyID != company_id {
		return nil, ErrNotFound
	}

	snapshot := *node
	return &snapshot, nil
}

func (s *MemoryStore) NodeByMember(company_id string, uid string) (*models.TreeNode, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	id, found := s.nodes_by_member[memberKey(company_id, uid)]
	if !found {
		return nil, ErrNotFound
	}

	snapshot := *s.nodes[id]
	return &snapshot, nil
}

func (s *MemoryStore) CreateNode(node *models.TreeNode) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	key := memberKey(node.CompanyID, node.MemberUID)
	if _, found := s.nodes_by_member[key]; found {
		return errors.New("node already exists")
	}

	s.next_node_id += 1
	node.ID = s.next_node_id
	node.CreatedAt = time.Now()

	snapshot := *node
	s.nodes[node.ID] = &snapshot
	s.nodes_by_member[key] = node.ID

	return nil
}

func (s *MemoryStore) UpdateNode(node *models.TreeNode) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	existing, found := s.nodes[node.ID]
	if !found {
		return ErrNotFound
	}

	if existing.LockVersion != node.LockVersion {
		return ErrVersionConflict
	}

	node.LockVersion += 1
	snapshot := *node
	s.nodes[node.ID] = &snapshot

	return nil
}

func (s *MemoryStore) CreateIncome(income *models.IncomeTransaction) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	key := memberKey(income.CompanyID, income.UUID.String())
	if _, found := s.incomes[key]; found {
		return errors.New("income already exists")
	}

	s.next_income_id += 1
	income.ID = s.next_income_id
	if income.CreatedAt.IsZero() {
		income.CreatedAt = time.Now()
	}

	snapshot := *income
	s.incomes[key] = &snapshot
	s.income_order = append(s.income_order, key)

	return nil
}

func (s *MemoryStore) IncomeInWindow(company_id string, member_uid string, income_type types.IncomeType, from time.Time, to time.Time) (decimal.Decimal, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	total := decimal.Zero

	for _, key := range s.income_order {
		income := s.incomes[key]
		if income.CompanyID != company_id || income.MemberUID != member_uid {
			continue
		}
		if income.IncomeType != income_type || income.Status == types.IncomeCancelled {
			continue
		}
		if income.CreatedAt.Before(from) || !income.CreatedAt.Before(to) {
			continue
		}

		total = total.Add(income.Amount)
	}

	return total, nil
}

func (s *MemoryStore) PairsTotal(company_id string, member_uid string) (int64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var pairs int64

	for _, key := range s.income_order {
		income := s.incomes[key]
		if income.CompanyID != company_id || income.MemberUID != member_uid {
			continue
		}
		if income.IncomeType != types.IncomeBinaryMatching || income.Status == types.IncomeCancelled {
			continue
		}

		pairs += income.PairCount
	}

	return pairs, nil
}

func (s *MemoryStore) CreditIncome(company_id string, id uuid.UUID) (*models.Wallet, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	income, found := s.incomes[memberKey(company_id, id.String())]
	if !found {
		return nil, ErrNotFound
	}

	wallet := s.walletLocked(company_id, income.MemberUID)

	if income.Status == types.IncomeCredited {
		snapshot := *wallet
		return &snapshot, nil
	}
	if income.Status == types.IncomeCancelled {
		return nil, errors.New("income cancelled")
	}

	wallet.AvailableBalance = wallet.AvailableBalance.Add(income.Amount)
	wallet.TotalEarned = wallet.TotalEarned.Add(income.Amount)
	income.Status = types.IncomeCredited

	snapshot := *wallet
	return &snapshot, nil
}

func (s *MemoryStore) Wallet(company_id string, member_uid string) (*models.Wallet, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	snapshot := *s.walletLocked(company_id, member_uid)
	return &snapshot, nil
}

func (s *MemoryStore) walletLocked(company_id string, member_uid string) *models.Wallet {
	key := memberKey(company_id, member_uid)

	wallet, found := s.wallets[key]
	if !found {
		wallet = &models.Wallet{
			ID:        uint64(len(s.wallets) + 1),
			CompanyID: company_id,
			MemberUID: member_uid,
		}
		s.wallets[key] = wallet
	}

	return wallet
}
