package leads

import (
	"reflect"
	"testing"
)

func TestSummarizeCompositeKeys(t *testing.T) {
	records := []map[string]any{
		{"id": "L1", "createdById": "u1", "assignedToId": "u2"},
		{"id": "L2", "createdById": "u1", "assignedToId": "u2"},
		{"id": "L3", "createdById": "u1", "assignedToId": "u3"},
		{"id": "L4"},
	}
	groups := GroupByCreatorAssignee(records)

	summary := Summarize(groups)

	if summary.TotalLeads != 4 {
		t.Errorf("TotalLeads = %d", summary.TotalLeads)
	}
	if summary.TotalGroups != 3 {
		t.Errorf("TotalGroups = %d", summary.TotalGroups)
	}
	if summary.LeadsByCreator["u1"] != 3 {
		t.Errorf("LeadsByCreator[u1] = %d", summary.LeadsByCreator["u1"])
	}
	if summary.LeadsByCreator[UnknownCreatorID] != 1 {
		t.Errorf("LeadsByCreator[unknown] = %d", summary.LeadsByCreator[UnknownCreatorID])
	}
	if summary.LeadsByAssignee["u2"] != 2 {
		t.Errorf("LeadsByAssignee[u2] = %d", summary.LeadsByAssignee["u2"])
	}
	if summary.UniqueCreators != 2 {
		t.Errorf("UniqueCreators = %d", summary.UniqueCreators)
	}
	if !reflect.DeepEqual(summary.Assignees, []string{"u2", "u3", UnassignedAssigneeID}) {
		t.Errorf("Assignees = %v", summary.Assignees)
	}
	if len(summary.GroupingKeys) != 3 {
		t.Errorf("GroupingKeys = %v", summary.GroupingKeys)
	}
}

func TestSummarizePlainAssigneeKeys(t *testing.T) {
	records := []map[string]any{
		{"id": "L1", "assignedTo": "Priya"},
		{"id": "L2", "assignedTo": "Priya"},
		{"id": "L3"},
	}
	groups := GroupByAssignee(records)

	summary := Summarize(groups)

	if summary.TotalLeads != 3 || summary.TotalGroups != 2 {
		t.Errorf("totals = %d leads, %d groups", summary.TotalLeads, summary.TotalGroups)
	}

	// Plain keys carry no creator, so everything lands under unknown.
	if summary.UniqueCreators != 1 || summary.Creators[0] != UnknownCreatorID {
		t.Errorf("Creators = %v", summary.Creators)
	}
	if summary.LeadsByAssignee["Priya"] != 2 {
		t.Errorf("LeadsByAssignee[Priya] = %d", summary.LeadsByAssignee["Priya"])
	}
	if summary.LeadsByAssignee[UnassignedKey] != 1 {
		t.Errorf("LeadsByAssignee[Unassigned] = %d", summary.LeadsByAssignee[UnassignedKey])
	}
}
