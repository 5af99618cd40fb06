package notifier

import (
	"github.com/fukayatti/api.fukayatti0.dev/internal/bulletin"
)

// Notifier defines the interface for announcing bulletin records.
type Notifier interface {
	// Notify announces the given records. An empty batch is a no-op.
	Notify(records []bulletin.Record) error
}
