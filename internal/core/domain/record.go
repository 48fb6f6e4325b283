package domain

import "time"

// Meta holds the bookkeeping fields shared by every stored record.
type Meta struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedBy string    `json:"created_by" bson:"created_by"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Base returns the embedded Meta so generic code can stamp ids and times.
func (m *Meta) Base() *Meta {
	return m
}

// Record is satisfied by a pointer to any struct embedding Meta.
type Record interface {
	Base() *Meta
}
