package types

type PlacementSide = string

var (
	SideLeft  PlacementSide = "left"
	SideRight PlacementSide = "right"
)

type SpilloverMode = string

var (
	SpilloverAuto   SpilloverMode = "auto"
	SpilloverManual SpilloverMode = "manual"
)

type WeakLegPolicy = string

var (
	WeakLegLeft    WeakLegPolicy = "left"
	WeakLegRight   WeakLegPolicy = "right"
	WeakLegSmaller WeakLegPolicy = "smaller"
)

type CappingPeriod = string

var (
	PeriodDay   CappingPeriod = "day"
	PeriodWeek  CappingPeriod = "week"
	PeriodMonth CappingPeriod = "month"
)

type IncomeType = string

var (
	IncomeDirectReferral  IncomeType = "direct_referral"
	IncomeBinaryMatching  IncomeType = "binary_matching"
	IncomeSponsorMatching IncomeType = "sponsor_matching"
	IncomeRepurchase      IncomeType = "repurchase"
	IncomeRankBonus       IncomeType = "rank_bonus"
)

type IncomeStatus = string

var (
	IncomePending   IncomeStatus = "pending"
	IncomeCredited  IncomeStatus = "credited"
	IncomeCancelled IncomeStatus = "cancelled"
)

type PayloadAction = string

var (
	ActionRegister PayloadAction = "register"
	ActionPurchase PayloadAction = "purchase"
	ActionCredit   PayloadAction = "credit"
)

type OrderBy = string

var (
	OrderByAsc  OrderBy = "asc"
	OrderByDesc OrderBy = "desc"
)
