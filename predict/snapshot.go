package predict

import (
	"securecheck-api/gateway"
	"securecheck-api/models"
)

// Snapshot is the stop history as fetched at the start of a request cycle.
// It is never modified after construction; every reader gets the same view.
type Snapshot struct {
	records []models.StopRecord
}

// NewSnapshot decodes every row of rs. A nil or empty result gives an empty
// snapshot.
func NewSnapshot(rs *gateway.ResultSet) Snapshot {
	if rs.Empty() {
		return Snapshot{}
	}
	records := make([]models.StopRecord, len(rs.Rows))
	for i, row := range rs.Rows {
		records[i] = models.StopRecordFromRow(row)
	}
	return Snapshot{records: records}
}

// SnapshotOf copies records into a snapshot, keeping their order.
func SnapshotOf(records ...models.StopRecord) Snapshot {
	return Snapshot{records: append([]models.StopRecord(nil), records...)}
}

func (s Snapshot) Len() int { return len(s.records) }

// At returns the i-th record in scan order. The pointer fields are shared
// with the snapshot and must not be written through.
func (s Snapshot) At(i int) models.StopRecord { return s.records[i] }
