package report

import "github.com/jengzang/travel-report-go/internal/models"

// entryBuilder is an append-only list of entries whose last element can be replaced
type entryBuilder struct {
	entries []models.ReportEntry
}

func newEntryBuilder(capacity int) *entryBuilder {
	return &entryBuilder{entries: make([]models.ReportEntry, 0, capacity)}
}

func (b *entryBuilder) Append(e models.ReportEntry) {
	b.entries = append(b.entries, e)
}

// Last returns the most recently placed entry
func (b *entryBuilder) Last() (models.ReportEntry, bool) {
	if len(b.entries) == 0 {
		return models.ReportEntry{}, false
	}
	return b.entries[len(b.entries)-1], true
}

// ReplaceLast swaps the most recently placed entry for e.
// It panics on an empty builder.
func (b *entryBuilder) ReplaceLast(e models.ReportEntry) {
	b.entries[len(b.entries)-1] = e
}

func (b *entryBuilder) Entries() []models.ReportEntry {
	return b.entries
}
