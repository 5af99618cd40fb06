package cli

import (
	"testing"

	"github.com/fukayatti/api.fukayatti0.dev/internal/bulletin"
)

func classOrder(records []bulletin.Record) []string {
	classes := make([]string, len(records))
	for i, rec := range records {
		classes[i] = rec.TargetClass
	}
	return classes
}

func TestSortRecords(t *testing.T) {
	base := []bulletin.Record{
		{Date: "1/7(水)", TargetClass: "5-J"},
		{Date: "1/6(火)", TargetClass: "2-B"},
		{Date: bulletin.UnknownDate, TargetClass: "9-Z"},
		{Date: "1/6(火)", TargetClass: "1-A"},
	}

	tests := []struct {
		name  string
		order SortOrder
		want  []string
	}{
		{
			name:  "source keeps bulletin order",
			order: SortBySource,
			want:  []string{"5-J", "2-B", "9-Z", "1-A"},
		},
		{
			name:  "date sorts resolved dates with unknowns last",
			order: SortByDate,
			want:  []string{"1-A", "2-B", "5-J", "9-Z"},
		},
		{
			name:  "class sorts lexically",
			order: SortByClass,
			want:  []string{"1-A", "2-B", "5-J", "9-Z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]bulletin.Record, len(base))
			copy(records, base)

			sortRecords(records, tt.order)

			got := classOrder(records)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("order = %v, want %v", got, tt.want)
				}
			}
		})
	}
}
