package require

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// PublisherEntry is one row of the publisher index (spec.md §6): a
// publisher name mapped to the module index URL it maintains.
type PublisherEntry struct {
	Publisher string
	IndexURL  string
}

// ModuleEntry is one row of a publisher's module index (spec.md §6): a
// library name mapped to its fetch location and latest known version.
type ModuleEntry struct {
	Name    string
	Source  string
	Version string
}

// ParsePublisherIndex parses the top-level registry CSV ("publisher,url"
// per line). Blank lines and lines starting with "#" are ignored, matching
// the REQUIRE registry format's tolerance for hand-edited index files.
func ParsePublisherIndex(data string) ([]PublisherEntry, error) {
	rows, err := readCSVRows(data, 2)
	if err != nil {
		return nil, err
	}
	out := make([]PublisherEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, PublisherEntry{Publisher: row[0], IndexURL: row[1]})
	}
	return out, nil
}

// ParseModuleIndex parses a publisher's module index CSV
// ("name,source,version" per line) with the same comment/blank-line rules.
func ParseModuleIndex(data string) ([]ModuleEntry, error) {
	rows, err := readCSVRows(data, 3)
	if err != nil {
		return nil, err
	}
	out := make([]ModuleEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, ModuleEntry{Name: row[0], Source: row[1], Version: row[2]})
	}
	return out, nil
}

func readCSVRows(data string, wantFields int) ([][]string, error) {
	var filtered strings.Builder
	for _, line := range strings.Split(data, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		filtered.WriteString(line)
		filtered.WriteByte('\n')
	}

	r := csv.NewReader(strings.NewReader(filtered.String()))
	r.FieldsPerRecord = wantFields
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("require: malformed registry index: %w", err)
	}
	return records, nil
}
