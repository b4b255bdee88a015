package score

import "testing"

func TestIsHigher(t *testing.T) {
	tests := []struct {
		name    string
		next    Rank
		current Rank
		want    bool
	}{
		{"higher tier", Rank{"GOLD", "IV"}, Rank{"SILVER", "I"}, true},
		{"lower tier", Rank{"SILVER", "I"}, Rank{"GOLD", "IV"}, false},
		{"same tier higher division", Rank{"SILVER", "I"}, Rank{"SILVER", "II"}, true},
		{"same tier lower division", Rank{"SILVER", "III"}, Rank{"SILVER", "II"}, false},
		{"equal", Rank{"GOLD", "II"}, Rank{"GOLD", "II"}, false},
		{"no current peak", Rank{"IRON", "IV"}, Rank{}, true},
		{"unknown next never wins", Rank{}, Rank{"IRON", "IV"}, false},
		{"apex compares by tier alone", Rank{"GRANDMASTER", ""}, Rank{"MASTER", ""}, true},
		{"same apex tier", Rank{"MASTER", ""}, Rank{"MASTER", ""}, false},
		{"case insensitive", Rank{"gold", "i"}, Rank{"Gold", "II"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHigher(tt.next, tt.current); got != tt.want {
				t.Errorf("IsHigher(%+v, %+v) = %v, want %v", tt.next, tt.current, got, tt.want)
			}
		})
	}
}

// The stored peak after any observation sequence must equal the sequence
// maximum regardless of arrival order.
func TestPeakIsMonotonic(t *testing.T) {
	sequences := [][]Rank{
		{{"SILVER", "II"}, {"GOLD", "IV"}, {"SILVER", "I"}},
		{{"SILVER", "I"}, {"SILVER", "II"}, {"GOLD", "IV"}},
		{{"GOLD", "IV"}, {"SILVER", "I"}, {"SILVER", "II"}},
	}

	for i, seq := range sequences {
		var peak Rank
		for _, observed := range seq {
			if IsHigher(observed, peak) {
				peak = observed
			}
		}
		if peak.Tier != "GOLD" || peak.Division != "IV" {
			t.Errorf("sequence %d: peak = %+v, want GOLD/IV", i, peak)
		}
	}
}
