package wt

import (
	"database/sql"
	"fmt"
	"time"

	"wordtrack/internal/database/sqlc"
)

// DateLayout is the format of DailySnapshot dates.
const DateLayout = "2006-01-02"

// Delta is the outcome of a computed diff for one document.
type Delta struct {
	Added      int64
	Deleted    int64
	Total      int64          // current word count after the change
	RevisionID sql.NullString // change marker observed for this version
}

// Net returns words added minus words deleted.
func (d Delta) Net() int64 {
	return d.Added - d.Deleted
}

// aggregate folds a diff into the persisted state of doc. A nil delta is the
// fast path: no event is written and an existing same-day snapshot is left
// alone. doc is updated in place to reflect what was written.
func aggregate(s Store, doc *sqlc.Document, date string, delta *Delta, now time.Time) error {
	if delta != nil {
		event := &sqlc.RevisionEvent{
			DocumentID:   doc.ID,
			RevisionID:   delta.RevisionID,
			Timestamp:    now,
			WordsAdded:   delta.Added,
			WordsDeleted: delta.Deleted,
			NetChange:    delta.Net(),
			Description:  describe(delta),
		}
		if err := s.AppendRevisionEvent(event); err != nil {
			return storeError(fmt.Sprintf("appending revision event for %s", doc.ID), err)
		}
		if err := s.UpdateDocumentRevision(doc.ID, delta.RevisionID, delta.Total); err != nil {
			return storeError(fmt.Sprintf("updating revision for %s", doc.ID), err)
		}
		doc.LastRevisionID = delta.RevisionID
		doc.TotalWords = delta.Total
	}

	snap, err := s.FindDailySnapshot(doc.ID, date)
	if err != nil {
		return storeError(fmt.Sprintf("finding daily snapshot for %s", doc.ID), err)
	}

	switch {
	case snap == nil:
		var net int64
		if delta != nil {
			net = delta.Net()
		}
		if _, err := s.CreateDailySnapshot(doc.ID, date, doc.TotalWords, net, now); err != nil {
			return storeError(fmt.Sprintf("creating daily snapshot for %s", doc.ID), err)
		}
	case delta != nil:
		// Net deltas accumulate across same-day runs; the total is last-write-wins.
		if err := s.UpdateDailySnapshot(snap.ID, delta.Total, snap.NetAdded+delta.Net()); err != nil {
			return storeError(fmt.Sprintf("updating daily snapshot for %s", doc.ID), err)
		}
	}

	if err := s.TouchDocument(doc.ID, now); err != nil {
		return storeError(fmt.Sprintf("touching document %s", doc.ID), err)
	}
	doc.LastSynced = now
	return nil
}

func describe(d *Delta) sql.NullString {
	if d.Added == 0 && d.Deleted == 0 {
		return sql.NullString{String: "no word changes", Valid: true}
	}
	return sql.NullString{String: fmt.Sprintf("+%d -%d words", d.Added, d.Deleted), Valid: true}
}
