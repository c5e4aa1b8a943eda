package leads

import (
	"fmt"
	"strings"
)

// Reserved bucket names for records whose grouping field is missing, empty,
// or a placeholder.
const (
	UnassignedKey        = "Unassigned"
	UnknownCreatorID     = "unknown"
	UnassignedAssigneeID = "unassigned"
)

// Strategy selects how records are partitioned into groups.
type Strategy string

const (
	StrategyAssignee        Strategy = "assignee"
	StrategyCreatorAssignee Strategy = "creator_assignee"
)

// Groups is an insertion-ordered partition of records. Bucket order matches
// first occurrence of each key in the input, and records inside a bucket keep
// input order, so document IDs derived downstream are reproducible.
type Groups struct {
	keys    []string
	buckets map[string][]map[string]any
}

func newGroups() *Groups {
	return &Groups{buckets: make(map[string][]map[string]any)}
}

func (g *Groups) add(key string, record map[string]any) {
	if _, exists := g.buckets[key]; !exists {
		g.keys = append(g.keys, key)
	}
	g.buckets[key] = append(g.buckets[key], record)
}

// Keys returns bucket names in first-occurrence order.
func (g *Groups) Keys() []string { return g.keys }

// Get returns the records in one bucket, in input order.
func (g *Groups) Get(key string) []map[string]any { return g.buckets[key] }

// Len is the bucket count.
func (g *Groups) Len() int { return len(g.keys) }

// TotalRecords sums bucket sizes.
func (g *Groups) TotalRecords() int {
	total := 0
	for _, key := range g.keys {
		total += len(g.buckets[key])
	}
	return total
}

// groupingPlaceholders is the smaller placeholder set the grouper recognizes.
var groupingPlaceholders = map[string]struct{}{
	"null":       {},
	"none":       {},
	"n/a":        {},
	"unassigned": {},
}

// normalizeGroupValue trims and stringifies a grouping field, returning ""
// for anything that means "no value".
func normalizeGroupValue(raw any) string {
	if raw == nil {
		return ""
	}
	value := strings.TrimSpace(Stringify(raw))
	if _, placeholder := groupingPlaceholders[strings.ToLower(value)]; placeholder {
		return ""
	}
	return value
}

// GroupRecords partitions records with the chosen strategy.
func GroupRecords(records []map[string]any, strategy Strategy) (*Groups, error) {
	switch strategy {
	case StrategyAssignee, "":
		return GroupByAssignee(records), nil
	case StrategyCreatorAssignee:
		return GroupByCreatorAssignee(records), nil
	default:
		return nil, fmt.Errorf("unknown grouping strategy %q", strategy)
	}
}

// GroupByAssignee buckets records by the assignedTo field. Records with no
// usable assignee land in the reserved Unassigned bucket, which is appended
// after all named buckets.
func GroupByAssignee(records []map[string]any) *Groups {
	groups := newGroups()
	var unassigned []map[string]any

	for _, record := range records {
		assignee := normalizeGroupValue(record["assignedTo"])
		if assignee == "" {
			unassigned = append(unassigned, record)
			continue
		}
		groups.add(assignee, record)
	}

	for _, record := range unassigned {
		groups.add(UnassignedKey, record)
	}
	return groups
}

// GroupByCreatorAssignee buckets records by the composite
// "created:<createdById>|assigned:<assignedToId>" key, substituting the
// reserved ids when either side is missing.
func GroupByCreatorAssignee(records []map[string]any) *Groups {
	groups := newGroups()
	for _, record := range records {
		groups.add(CreatorAssigneeKey(record), record)
	}
	return groups
}

// CreatorAssigneeKey derives the composite grouping key for one record.
func CreatorAssigneeKey(record map[string]any) string {
	createdBy := normalizeGroupValue(record["createdById"])
	if createdBy == "" {
		createdBy = UnknownCreatorID
	}
	assignedTo := normalizeGroupValue(record["assignedToId"])
	if assignedTo == "" {
		assignedTo = UnassignedAssigneeID
	}
	return fmt.Sprintf("created:%s|assigned:%s", createdBy, assignedTo)
}
