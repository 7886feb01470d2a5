package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/teamvolt/binex/mq_client"
)

type Wallet struct {
	ID               uint64          `json:"id" gorm:"primaryKey"`
	CompanyID        string          `json:"company_id" gorm:"index:idx_wallets_company_member,unique"`
	MemberUID        string          `json:"member_uid" gorm:"index:idx_wallets_company_member,unique"`
	AvailableBalance decimal.Decimal `json:"available_balance" gorm:"default:0.0" validate:"ValidateAvailableBalance"`
	LockedBalance    decimal.Decimal `json:"locked_balance" gorm:"default:0.0" validate:"ValidateLockedBalance"`
	TotalEarned      decimal.Decimal `json:"total_earned" gorm:"default:0.0"`
	TotalWithdrawn   decimal.Decimal `json:"total_withdrawn" gorm:"default:0.0"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (w Wallet) ValidateAvailableBalance(AvailableBalance decimal.Decimal) bool {
	return AvailableBalance.GreaterThanOrEqual(decimal.Zero)
}

func (w Wallet) ValidateLockedBalance(LockedBalance decimal.Decimal) bool {
	return LockedBalance.GreaterThanOrEqual(decimal.Zero)
}

func (w *Wallet) PlusFunds(tx *gorm.DB, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.New("Cannot add funds (member uid: " + w.MemberUID + ", amount: " + amount.String() + ", balance: " + w.AvailableBalance.String() + ").")
	}

	w.AvailableBalance = w.AvailableBalance.Add(amount)
	w.TotalEarned = w.TotalEarned.Add(amount)
	return tx.Save(&w).Error
}

func (w *Wallet) SubFunds(tx *gorm.DB, amount decimal.Decimal) error {
	if !amount.IsPositive() || amount.GreaterThan(w.AvailableBalance) {
		return errors.New("Cannot subtract funds (member uid: " + w.MemberUID + ", amount: " + amount.String() + ", balance: " + w.AvailableBalance.String() + ").")
	}

	w.AvailableBalance = w.AvailableBalance.Sub(amount)
	w.TotalWithdrawn = w.TotalWithdrawn.Add(amount)
	return tx.Save(&w).Error
}

func (w *Wallet) LockFunds(tx *gorm.DB, amount decimal.Decimal) error {
	if !amount.IsPositive() || amount.GreaterThan(w.AvailableBalance) {
		return errors.New("Cannot lock funds (member uid: " + w.MemberUID + ", amount: " + amount.String() + ", balance: " + w.AvailableBalance.String() + ", locked: " + w.LockedBalance.String() + ").")
	}

	w.AvailableBalance = w.AvailableBalance.Sub(amount)
	w.LockedBalance = w.LockedBalance.Add(amount)
	return tx.Save(&w).Error
}

func (w *Wallet) UnlockFunds(tx *gorm.DB, amount decimal.Decimal) error {
	if !amount.IsPositive() || amount.GreaterThan(w.LockedBalance) {
		return errors.New("Cannot unlock funds (member uid: " + w.MemberUID + ", amount: " + amount.String() + ", balance: " + w.AvailableBalance.String() + ", locked: " + w.LockedBalance.String() + ").")
	}

	w.AvailableBalance = w.AvailableBalance.Add(amount)
	w.LockedBalance = w.LockedBalance.Sub(amount)
	return tx.Save(&w).Error
}

func (w *Wallet) Amount() decimal.Decimal {
	return w.AvailableBalance.Add(w.LockedBalance)
}

func (w *Wallet) TriggerEvent() {
	payload_message, _ := json.Marshal(w.ToJSON())

	mq_client.EnqueueEvent("private", w.MemberUID, "balance", payload_message)
}

type WalletJSON struct {
	AvailableBalance decimal.Decimal `json:"available_balance"`
	LockedBalance    decimal.Decimal `json:"locked_balance"`
	TotalEarned      decimal.Decimal `json:"total_earned"`
	TotalWithdrawn   decimal.Decimal `json:"total_withdrawn"`
}

func (w *Wallet) ToJSON() WalletJSON {
	return WalletJSON{
		AvailableBalance: w.AvailableBalance,
		LockedBalance:    w.LockedBalance,
		TotalEarned:      w.TotalEarned,
		TotalWithdrawn:   w.TotalWithdrawn,
	}
}
