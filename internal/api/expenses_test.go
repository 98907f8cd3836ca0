package api

import (
	"testing"
)

func TestNormalizePayers(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []string
		wantNil bool
	}{
		{
			name: "canonical spelling",
			body: `{"cost": 100, "payers": ["alice", "bob"]}`,
			want: []string{"alice", "bob"},
		},
		{
			name: "legacy capitalized spelling",
			body: `{"cost": 100, "Payers": ["alice"]}`,
			want: []string{"alice"},
		},
		{
			name:    "field absent means everyone",
			body:    `{"cost": 100}`,
			wantNil: true,
		},
		{
			name:    "explicit null means everyone",
			body:    `{"cost": 100, "payers": null}`,
			wantNil: true,
		},
		{
			name: "explicitly empty list survives as empty, not absent",
			body: `{"cost": 100, "payers": []}`,
			want: []string{},
		},
		{
			name: "canonical spelling wins when both are present",
			body: `{"payers": ["alice"], "Payers": ["bob"]}`,
			want: []string{"alice"},
		},
		{
			name:    "malformed list is treated as absent",
			body:    `{"cost": 100, "payers": "alice"}`,
			wantNil: true,
		},
		{
			name:    "malformed body is treated as absent",
			body:    `not json`,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizePayers([]byte(tt.body))
			if tt.wantNil {
				if got != nil {
					t.Errorf("normalizePayers() = %v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("normalizePayers() = nil, want %v", tt.want)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("normalizePayers() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("normalizePayers()[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}
