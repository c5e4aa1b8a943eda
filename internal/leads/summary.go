package leads

import (
	"sort"
	"strings"
)

// ProcessingSummary is the per-run statistics block the ingest endpoints
// return alongside the documents.
type ProcessingSummary struct {
	TotalLeads      int            `json:"total_leads_processed"`
	TotalGroups     int            `json:"total_groups"`
	UniqueCreators  int            `json:"total_unique_creators"`
	UniqueAssignees int            `json:"total_unique_assignees"`
	LeadsByCreator  map[string]int `json:"leads_by_creator"`
	LeadsByAssignee map[string]int `json:"leads_by_assignee"`
	LeadsByGroup    map[string]int `json:"leads_by_group"`
	Creators        []string       `json:"creators_list"`
	Assignees       []string       `json:"assignees_list"`
	GroupingKeys    []string       `json:"grouping_keys"`
}

// Summarize computes run statistics over a grouping. Composite
// "created:X|assigned:Y" keys are decomposed into creator and assignee
// counts; plain assignee keys count as assignees with an unknown creator.
func Summarize(groups *Groups) *ProcessingSummary {
	summary := &ProcessingSummary{
		TotalGroups:     groups.Len(),
		LeadsByCreator:  map[string]int{},
		LeadsByAssignee: map[string]int{},
		LeadsByGroup:    map[string]int{},
		GroupingKeys:    append([]string(nil), groups.Keys()...),
	}

	creators := map[string]struct{}{}
	assignees := map[string]struct{}{}

	for _, key := range groups.Keys() {
		size := len(groups.Get(key))
		summary.TotalLeads += size
		summary.LeadsByGroup[key] = size

		creator, assignee := decomposeGroupKey(key)
		creators[creator] = struct{}{}
		assignees[assignee] = struct{}{}
		summary.LeadsByCreator[creator] += size
		summary.LeadsByAssignee[assignee] += size
	}

	summary.Creators = sortedKeys(creators)
	summary.Assignees = sortedKeys(assignees)
	summary.UniqueCreators = len(summary.Creators)
	summary.UniqueAssignees = len(summary.Assignees)
	return summary
}

func decomposeGroupKey(key string) (creator, assignee string) {
	if !strings.Contains(key, "|") {
		return UnknownCreatorID, key
	}
	creator, assignee = UnknownCreatorID, UnassignedAssigneeID
	for _, part := range strings.Split(key, "|") {
		switch {
		case strings.HasPrefix(part, "created:"):
			creator = strings.TrimPrefix(part, "created:")
		case strings.HasPrefix(part, "assigned:"):
			assignee = strings.TrimPrefix(part, "assigned:")
		}
	}
	return creator, assignee
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
