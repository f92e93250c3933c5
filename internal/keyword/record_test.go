package keyword

import "testing"

func TestRecordIsValid(t *testing.T) {
	traffic := 12.5

	tests := []struct {
		name   string
		record Record
		want   bool
	}{
		{
			name:   "Valid record",
			record: Record{Text: "running shoes", Position: 5, SearchVolume: 1000},
			want:   true,
		},
		{
			name:   "Empty keyword text",
			record: Record{Text: "", Position: 5, SearchVolume: 1000},
			want:   false,
		},
		{
			name:   "Zero position",
			record: Record{Text: "running shoes", Position: 0, SearchVolume: 1000},
			want:   false,
		},
		{
			name:   "Negative position",
			record: Record{Text: "running shoes", Position: -3, SearchVolume: 1000},
			want:   false,
		},
		{
			name:   "Zero search volume",
			record: Record{Text: "running shoes", Position: 5, SearchVolume: 0},
			want:   false,
		},
		{
			name:   "Observed traffic does not affect validity",
			record: Record{Text: "running shoes", Position: 5, SearchVolume: 1000, ObservedTraffic: &traffic},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasObservedTraffic(t *testing.T) {
	traffic := 42.0

	with := Record{Text: "shoes", Position: 1, SearchVolume: 10, ObservedTraffic: &traffic}
	without := Record{Text: "shoes", Position: 1, SearchVolume: 10}

	if !with.HasObservedTraffic() {
		t.Error("expected HasObservedTraffic() = true when traffic is set")
	}
	if without.HasObservedTraffic() {
		t.Error("expected HasObservedTraffic() = false when traffic is nil")
	}
}
