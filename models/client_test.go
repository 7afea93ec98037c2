package models

import "testing"

func TestClient_DisplayName(t *testing.T) {
	tests := []struct {
		name   string
		client Client
		want   string
	}{
		{
			name:   "explicit client name wins",
			client: Client{ClientName: "Aunty Grace", FirstName: "Grace", LastName: "Okoro", BusinessName: "Grace Stores"},
			want:   "Aunty Grace",
		},
		{
			name:   "first and last name",
			client: Client{FirstName: "Grace", LastName: "Okoro"},
			want:   "Grace Okoro",
		},
		{
			name:   "first name only",
			client: Client{FirstName: "Grace"},
			want:   "Grace",
		},
		{
			name:   "business name fallback",
			client: Client{BusinessName: "Grace Stores"},
			want:   "Grace Stores",
		},
		{
			name:   "whitespace-only names are skipped",
			client: Client{ClientName: "  ", FirstName: " ", BusinessName: "Grace Stores"},
			want:   "Grace Stores",
		},
		{
			name:   "nothing usable",
			client: Client{},
			want:   "Unknown Client",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.client.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
