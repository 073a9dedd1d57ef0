package models

import "time"

type PaymentMethod string

const (
	PaymentMethodUPI  PaymentMethod = "UPI"
	PaymentMethodBank PaymentMethod = "BankTransfer"
)

type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "Pending"
	WithdrawalStatusApproved WithdrawalStatus = "Approved"
	WithdrawalStatusRejected WithdrawalStatus = "Rejected"
)

// WithdrawalRequest escrows funds at creation time: the wallet debit happens
// in the same transaction as the insert. The partial unique index keeps at
// most one Pending request per user even under concurrent submissions.
type WithdrawalRequest struct {
	ID            string        `gorm:"primaryKey;type:uuid;not null" json:"id"`
	UserID        string        `gorm:"index;index:idx_withdrawal_one_pending,unique,where:status = 'Pending';not null" json:"user_id"`
	Amount        float64       `gorm:"not null" json:"amount"`
	PaymentMethod PaymentMethod `gorm:"not null" json:"payment_method"`

	UPIID     *string `gorm:"column:upi_id" json:"upi_id,omitempty"`
	VirtualID *string `json:"virtual_id,omitempty"`

	BankAccountNumber *string `json:"bank_account_number,omitempty"`
	BankIFSC          *string `gorm:"column:bank_ifsc" json:"bank_ifsc,omitempty"`
	BankName          *string `json:"bank_name,omitempty"`
	AccountHolderName *string `json:"account_holder_name,omitempty"`

	Status     WithdrawalStatus `gorm:"not null;default:'Pending';index" json:"status"`
	AdminNotes *string          `json:"admin_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (WithdrawalRequest) TableName() string { return "withdrawal_requests" }
