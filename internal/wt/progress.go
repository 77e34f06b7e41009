package wt

import (
	"fmt"
	"sort"
	"time"

	"wordtrack/internal/database/sqlc"
)

// ProgressEntry is the word activity of a document or folder over a period.
// Added sums the positive daily net deltas and Removed the negative ones, so
// Removed is never positive.
type ProgressEntry struct {
	Kind    string // "document" or "folder"
	ID      string
	Name    string
	Added   int64
	Removed int64
}

// GetProgress reports word activity on or after the calendar date of since.
// A folder's progress covers the documents directly inside it. Entries with
// no activity are omitted. Documents come first, then folders, each sorted
// by name.
func (s *WTService) GetProgress(since time.Time) ([]ProgressEntry, error) {
	sinceDate := since.In(s.location).Format(DateLayout)

	snaps, err := s.database.ListDailySnapshotsSince(sinceDate)
	if err != nil {
		return nil, fmt.Errorf("listing daily snapshots: %w", err)
	}
	docs, err := s.database.ListDocuments()
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	folders, err := s.database.ListFolders()
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}

	docByID := make(map[string]*sqlc.Document, len(docs))
	for _, d := range docs {
		docByID[d.ID] = d
	}

	docProgress := make(map[string]*ProgressEntry)
	folderProgress := make(map[string]*ProgressEntry)
	for _, snap := range snaps {
		doc, ok := docByID[snap.DocumentID]
		if !ok {
			continue
		}
		dp := progressFor(docProgress, "document", doc.ID, doc.Name)
		fp := progressFor(folderProgress, "folder", doc.FolderID, "")
		if snap.NetAdded >= 0 {
			dp.Added += snap.NetAdded
			fp.Added += snap.NetAdded
		} else {
			dp.Removed += snap.NetAdded
			fp.Removed += snap.NetAdded
		}
	}
	for _, f := range folders {
		if fp, ok := folderProgress[f.ID]; ok {
			fp.Name = f.Name
		}
	}

	out := collectProgress(docProgress)
	out = append(out, collectProgress(folderProgress)...)
	return out, nil
}

func progressFor(m map[string]*ProgressEntry, kind, id, name string) *ProgressEntry {
	p, ok := m[id]
	if !ok {
		p = &ProgressEntry{Kind: kind, ID: id, Name: name}
		m[id] = p
	}
	return p
}

func collectProgress(m map[string]*ProgressEntry) []ProgressEntry {
	out := make([]ProgressEntry, 0, len(m))
	for _, p := range m {
		if p.Added == 0 && p.Removed == 0 {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// DayTotal is the net word change across all documents on one date.
type DayTotal struct {
	Date string
	Net  int64
}

// DocumentWords is a document's current word count.
type DocumentWords struct {
	ID    string
	Name  string
	Words int64
}

// Summary is the writing dashboard: headline numbers, a daily trend and a
// per-document breakdown.
type Summary struct {
	Date      string
	Today     int64 // net words today
	ThisWeek  int64 // net words since Monday
	Total     int64 // current words across all documents
	Trend     []DayTotal
	Documents []DocumentWords // largest first
}

// GetSummary builds the dashboard for today. The trend covers the last
// trendDays days including today.
func (s *WTService) GetSummary(trendDays int) (*Summary, error) {
	if trendDays < 1 {
		trendDays = 1
	}
	today := s.today()
	weekStart := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
	trendStart := today.AddDate(0, 0, -(trendDays - 1))

	from := weekStart
	if trendStart.Before(from) {
		from = trendStart
	}

	snaps, err := s.database.ListDailySnapshotsSince(from.Format(DateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing daily snapshots: %w", err)
	}
	docs, err := s.database.ListDocuments()
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	todayKey := today.Format(DateLayout)
	weekKey := weekStart.Format(DateLayout)
	trendKey := trendStart.Format(DateLayout)

	sum := &Summary{Date: todayKey}
	byDate := make(map[string]int64)
	for _, snap := range snaps {
		if snap.Date == todayKey {
			sum.Today += snap.NetAdded
		}
		if snap.Date >= weekKey {
			sum.ThisWeek += snap.NetAdded
		}
		if snap.Date >= trendKey {
			byDate[snap.Date] += snap.NetAdded
		}
	}

	for d := trendStart; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateLayout)
		sum.Trend = append(sum.Trend, DayTotal{Date: key, Net: byDate[key]})
	}

	for _, d := range docs {
		sum.Total += d.TotalWords
		sum.Documents = append(sum.Documents, DocumentWords{ID: d.ID, Name: d.Name, Words: d.TotalWords})
	}
	sort.SliceStable(sum.Documents, func(i, j int) bool {
		return sum.Documents[i].Words > sum.Documents[j].Words
	})

	return sum, nil
}
