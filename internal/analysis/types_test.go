package analysis

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1,500円", 1500},
		{"¥ 4,800", 4800},
		{"48000", 48000},
		{"980.50", 980.50},
		{"即決 12,000 円", 12000},
		{"価格未定", 0},
		{"", 0},
		{"...", 0},
	}

	for _, tt := range tests {
		if got := ParsePrice(tt.input); got != tt.want {
			t.Errorf("ParsePrice(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
