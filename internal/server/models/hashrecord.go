package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Input types recorded on a HashRecord.
const (
	InputTypeText = "text"
	InputTypeFile = "file"
)

// HashRecord is one persisted hashing operation. Exactly one of
// OriginalInput and OriginalFilename is set, matching InputType.
//
// OriginalInput keeps the submitted text verbatim. That is a deliberate,
// documented disclosure risk: anything password-like sent to /hash/text/
// ends up stored in clear next to its digest.
type HashRecord struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	InputType        string             `bson:"input_type" json:"input_type"`
	OriginalInput    string             `bson:"original_input,omitempty" json:"original_input,omitempty"`
	OriginalFilename string             `bson:"original_filename,omitempty" json:"original_filename,omitempty"`
	Algorithm        string             `bson:"algorithm" json:"algorithm"`
	Hash             string             `bson:"hash" json:"hash"`
	Timestamp        time.Time          `bson:"timestamp" json:"timestamp"`
}
