package services

import (
	"context"
	"fmt"

	"lead-rag-platform/internal/leads"

	"github.com/xuri/excelize/v2"
)

// ExportWorkbook builds an Excel workbook summarizing a company's leads as
// they would be grouped for indexing: a totals sheet plus a per-group
// breakdown.
func (s *LeadService) ExportWorkbook(ctx context.Context, company string) (*excelize.File, error) {
	records, err := s.stores.FetchLeads(ctx, company)
	if err != nil {
		return nil, err
	}

	groups, err := leads.GroupRecords(records, s.strategy)
	if err != nil {
		return nil, err
	}
	summary := leads.Summarize(groups)

	f := excelize.NewFile()

	summarySheet := "Summary"
	f.SetSheetName(f.GetSheetName(0), summarySheet)
	summaryRows := [][]any{
		{"Company", company},
		{"Total Leads", summary.TotalLeads},
		{"Total Groups", summary.TotalGroups},
		{"Unique Creators", summary.UniqueCreators},
		{"Unique Assignees", summary.UniqueAssignees},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, err
		}
	}

	groupSheet := "Groups"
	if _, err := f.NewSheet(groupSheet); err != nil {
		return nil, err
	}
	header := []any{"Group", "Leads", "Lead IDs"}
	if err := f.SetSheetRow(groupSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, key := range groups.Keys() {
		ids := ""
		for j, record := range groups.Get(key) {
			if j > 0 {
				ids += ", "
			}
			ids += fmt.Sprint(record["id"])
		}
		row := []any{key, len(groups.Get(key)), ids}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(groupSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}
