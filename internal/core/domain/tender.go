package domain

import "time"

// TenderStatus is the lifecycle state of a tender bid.
type TenderStatus string

const (
	TenderDraft     TenderStatus = "draft"
	TenderSubmitted TenderStatus = "submitted"
	TenderWon       TenderStatus = "won"
	TenderLost      TenderStatus = "lost"
	TenderCancelled TenderStatus = "cancelled"
)

// Tender is a procurement tender the company tracks or bids on.
type Tender struct {
	Meta     `bson:",inline"`
	Title    string       `json:"title" bson:"title" validate:"required,max=256"`
	Customer string       `json:"customer" bson:"customer" validate:"required,max=256"`
	Number   string       `json:"number,omitempty" bson:"number,omitempty" validate:"max=64"`
	Amount   float64      `json:"amount" bson:"amount" validate:"gte=0"`
	Currency string       `json:"currency" bson:"currency" validate:"required,len=3"`
	Status   TenderStatus `json:"status" bson:"status" validate:"required,oneof=draft submitted won lost cancelled"`
	Deadline time.Time    `json:"deadline" bson:"deadline"`
	Notes    string       `json:"notes,omitempty" bson:"notes,omitempty"`
}
