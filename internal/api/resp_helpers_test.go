package api

import (
	"net/http/httptest"
	"testing"
)

func TestParseDateFromQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantDate string
		wantErr  bool
	}{
		{
			name:     "Well-formed date",
			query:    "?date=2025-06-15",
			wantDate: "2025-06-15",
			wantErr:  false,
		},
		{
			name:     "Absent date is not an error",
			query:    "",
			wantDate: "",
			wantErr:  false,
		},
		{
			name:    "Time-of-day rejected",
			query:   "?date=2025-06-15T10:00:00Z",
			wantErr: true,
		},
		{
			name:    "Random string rejected",
			query:   "?date=yesterdayish",
			wantErr: true,
		},
		{
			name:    "Out-of-range month rejected",
			query:   "?date=2025-13-01",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/v1/tasks"+tt.query, nil)
			date, err := parseDateFromQuery("date", r)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseDateFromQuery() err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && date != tt.wantDate {
				t.Errorf("parseDateFromQuery() date = %v, want %v", date, tt.wantDate)
			}
		})
	}
}

func TestParseIDFromPath(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantID  uint
		wantErr bool
	}{
		{
			name:    "Plain id",
			value:   "42",
			wantID:  42,
			wantErr: false,
		},
		{
			name:    "Empty gives error",
			value:   "",
			wantErr: true,
		},
		{
			name:    "Negative gives error",
			value:   "-1",
			wantErr: true,
		},
		{
			name:    "Non-numeric gives error",
			value:   "abc",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/v1/tasks/x", nil)
			r.SetPathValue("task_id", tt.value)
			id, err := parseIDFromPath("task_id", r)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseIDFromPath() err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && id != tt.wantID {
				t.Errorf("parseIDFromPath() id = %v, want %v", id, tt.wantID)
			}
		})
	}
}
