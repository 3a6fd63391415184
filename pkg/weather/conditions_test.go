package weather

import "testing"

func TestGetWeatherCondition(t *testing.T) {
	testCases := []struct {
		name string
		code int
		want Condition
	}{
		{name: "Clear sky", code: 0, want: Condition{"Clear Sky", "☀️"}},
		{name: "Slight rain", code: 61, want: Condition{"Slight Rain", "🌦️"}},
		{name: "Thunderstorm", code: 95, want: Condition{"Thunderstorm", "⛈️"}},
		{name: "Unmapped code", code: 12, want: Condition{"Unknown", "☀️"}},
		{name: "Negative code", code: -1, want: UnknownCondition},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GetWeatherCondition(tc.code); got != tc.want {
				t.Errorf("Expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestWindDirectionLabel(t *testing.T) {
	testCases := []struct {
		degrees int
		want    string
	}{
		{0, "N"},
		{45, "NE"},
		{90, "E"},
		{180, "S"},
		{270, "W"},
		{359, "N"},
		{-90, "W"},
		{720, "N"},
	}

	for _, tc := range testCases {
		if got := WindDirectionLabel(tc.degrees); got != tc.want {
			t.Errorf("WindDirectionLabel(%d): expected %s, got %s", tc.degrees, tc.want, got)
		}
	}
}
