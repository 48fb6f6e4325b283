package domain

import "time"

// Budget is a planned spending envelope for a period.
type Budget struct {
	Meta        `bson:",inline"`
	Name        string    `json:"name" bson:"name" validate:"required,max=128"`
	PeriodStart time.Time `json:"period_start" bson:"period_start" validate:"required"`
	PeriodEnd   time.Time `json:"period_end" bson:"period_end" validate:"required,gtfield=PeriodStart"`
	Planned     float64   `json:"planned" bson:"planned" validate:"gte=0"`
	Spent       float64   `json:"spent" bson:"spent" validate:"gte=0"`
	Currency    string    `json:"currency" bson:"currency" validate:"required,len=3"`
	Owner       string    `json:"owner,omitempty" bson:"owner,omitempty"`
}

const (
	AccountPersonal = "personal"
	AccountCompany  = "company"
)

// FinanceAccount is a wallet, card or bank account money moves through.
type FinanceAccount struct {
	Meta     `bson:",inline"`
	Name     string  `json:"name" bson:"name" validate:"required,max=128"`
	Kind     string  `json:"kind" bson:"kind" validate:"required,oneof=personal company"`
	Balance  float64 `json:"balance" bson:"balance"`
	Currency string  `json:"currency" bson:"currency" validate:"required,len=3"`
}

const (
	TransactionIncome   = "income"
	TransactionExpense  = "expense"
	TransactionTransfer = "transfer"
)

// Transaction is a single money movement on a finance account.
type Transaction struct {
	Meta        `bson:",inline"`
	AccountID   string    `json:"account_id" bson:"account_id" validate:"required"`
	Kind        string    `json:"kind" bson:"kind" validate:"required,oneof=income expense transfer"`
	Amount      float64   `json:"amount" bson:"amount" validate:"gt=0"`
	Currency    string    `json:"currency" bson:"currency" validate:"required,len=3"`
	Category    string    `json:"category,omitempty" bson:"category,omitempty" validate:"max=64"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	OccurredAt  time.Time `json:"occurred_at" bson:"occurred_at" validate:"required"`
}

const (
	DebtOwedToMe = "owed_to_me"
	DebtIOwe     = "i_owe"
)

// Debt is a row of the debt table: money lent or borrowed.
type Debt struct {
	Meta         `bson:",inline"`
	Counterparty string     `json:"counterparty" bson:"counterparty" validate:"required,max=128"`
	Direction    string     `json:"direction" bson:"direction" validate:"required,oneof=owed_to_me i_owe"`
	Amount       float64    `json:"amount" bson:"amount" validate:"gt=0"`
	Currency     string     `json:"currency" bson:"currency" validate:"required,len=3"`
	DueDate      *time.Time `json:"due_date,omitempty" bson:"due_date,omitempty"`
	Settled      bool       `json:"settled" bson:"settled"`
	Notes        string     `json:"notes,omitempty" bson:"notes,omitempty"`
}
