package graph

import (
	"testing"

	"script-translator/internal/correction"

	"github.com/google/go-cmp/cmp"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

func record(values ...any) *neo4j.Record {
	return &neo4j.Record{
		Keys:   []string{"pattern", "replacement", "whole_word"},
		Values: values,
	}
}

func TestRuleFromRecord(t *testing.T) {
	tests := []struct {
		name    string
		rec     *neo4j.Record
		want    correction.Rule
		wantErr bool
	}{
		{
			name: "bounded",
			rec:  record(`o\s+mestre`, "o Mestre", true),
			want: correction.Rule{Pattern: `o\s+mestre`, Replacement: "o Mestre", WholeWord: true},
		},
		{
			name: "unbounded",
			rec:  record("véi de puta", "filho da puta", false),
			want: correction.Rule{Pattern: "véi de puta", Replacement: "filho da puta"},
		},
		{
			name: "missing whole_word defaults to bounded",
			rec:  record("abc", "xyz", nil),
			want: correction.Rule{Pattern: "abc", Replacement: "xyz", WholeWord: true},
		},
		{name: "empty pattern", rec: record("", "x", true), wantErr: true},
		{name: "wrong type", rec: record(int64(3), "x", true), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ruleFromRecord(tt.rec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("rule diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRuleParams(t *testing.T) {
	rules := []correction.Rule{
		{Pattern: "a", Replacement: "b", WholeWord: true},
		{Pattern: "c", Replacement: "d"},
	}
	got := ruleParams(rules)
	want := []map[string]any{
		{"pattern": "a", "replacement": "b", "whole_word": true, "position": int64(0)},
		{"pattern": "c", "replacement": "d", "whole_word": false, "position": int64(1)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("params diff (-want +got):\n%s", diff)
	}
}
