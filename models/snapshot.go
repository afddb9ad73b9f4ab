package models

import (
	"time"

	"gorm.io/datatypes"
)

// Snapshot events.
const (
	SnapshotConverted = "CONVERTIDA"
	SnapshotVoided    = "ANULADA"
)

// DocumentSnapshot is an immutable JSON archive of a document at the moment it
// reached a terminal transition (quotation converted, note voided). The live
// rows keep changing hands; the snapshot is what the renderer and any later
// dispute resolution read.
type DocumentSnapshot struct {
	ID       uint           `json:"id" gorm:"primaryKey"`
	DocType  string         `json:"doc_type" gorm:"type:VARCHAR(20);index:idx_document_snapshots_doc,priority:1"`
	DocID    uint           `json:"doc_id" gorm:"index:idx_document_snapshots_doc,priority:2"`
	Event    string         `json:"event" gorm:"type:VARCHAR(20)"`
	Snapshot datatypes.JSON `json:"snapshot" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
}
