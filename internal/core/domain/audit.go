package domain

import "time"

type AuditOp string

const (
	AuditCreate AuditOp = "create"
	AuditUpdate AuditOp = "update"
	AuditDelete AuditOp = "delete"
)

// AuditEvent records a mutation of a stored record.
type AuditEvent struct {
	Resource string    `json:"resource" bson:"resource"`
	Op       AuditOp   `json:"op" bson:"op"`
	RecordID string    `json:"record_id" bson:"record_id"`
	ActorID  string    `json:"actor_id" bson:"actor_id"`
	At       time.Time `json:"at" bson:"at"`
}
