package model

import (
	"sort"
)

// TableSummary describes one logical table inside a persisted document
type TableSummary struct {
	Name   string
	Cases  []string // top-level keys of the table's contribution
	Values int      // scalar leaves, nulls included
	Nulls  int
}

// DocumentSummary describes one persisted result document
type DocumentSummary struct {
	File        string
	Software    string
	Version     string
	ReleaseDate string
	Tables      []TableSummary
}

// CaseCount returns the number of distinct cases across the document's tables
func (d *DocumentSummary) CaseCount() int {
	seen := make(map[string]bool)
	for _, t := range d.Tables {
		for _, c := range t.Cases {
			seen[c] = true
		}
	}
	return len(seen)
}

// EmptyTables lists tables that contributed no cases
func (d *DocumentSummary) EmptyTables() []string {
	var out []string
	for _, t := range d.Tables {
		if len(t.Cases) == 0 && t.Values == 0 {
			out = append(out, t.Name)
		}
	}
	return out
}

// Summary is the input of every report format
type Summary struct {
	GeneratedAt string
	Documents   []DocumentSummary

	TotalTables int
	TotalValues int
	TotalNulls  int
}

// NewSummary creates an empty summary
func NewSummary(generatedAt string) *Summary {
	return &Summary{
		GeneratedAt: generatedAt,
		Documents:   make([]DocumentSummary, 0),
	}
}

// Add appends a document and updates the totals
func (s *Summary) Add(d DocumentSummary) {
	s.Documents = append(s.Documents, d)
	s.TotalTables += len(d.Tables)
	for _, t := range d.Tables {
		s.TotalValues += t.Values
		s.TotalNulls += t.Nulls
	}
}

// Sort orders documents by software then version
func (s *Summary) Sort() {
	sort.SliceStable(s.Documents, func(i, j int) bool {
		a, b := s.Documents[i], s.Documents[j]
		if a.Software != b.Software {
			return a.Software < b.Software
		}
		if a.Version != b.Version {
			return a.Version < b.Version
		}
		return a.File < b.File
	})
}
