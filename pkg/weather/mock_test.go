package weather

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"
)

var sampleCityIDs = []string{
	"", "a", "ab", "1", "42", "london", "New York", "tokyo-jp",
	"zz", "ZZ", "München", "東京", "🌧️city", "5f3c2a", "9999999",
}

func TestSeed(t *testing.T) {
	testCases := []struct {
		name   string
		cityID string
		want   int
	}{
		{name: "Empty", cityID: "", want: 0},
		{name: "Single character", cityID: "a", want: 97},
		{name: "Two characters", cityID: "ab", want: 97 + 98},
		{name: "Only first two count", cityID: "abc", want: 97 + 98},
		{name: "Digits", cityID: "12", want: 49 + 50},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Seed(tc.cityID); got != tc.want {
				t.Errorf("Expected seed %d, got %d", tc.want, got)
			}
		})
	}
}

func TestGenerateMockWeather_Deterministic(t *testing.T) {
	for _, id := range sampleCityIDs {
		first, _ := json.Marshal(GenerateMockWeather(id))
		second, _ := json.Marshal(GenerateMockWeather(id))
		if string(first) != string(second) {
			t.Errorf("Expected identical output for %q:\n%s\n%s", id, first, second)
		}

		if !reflect.DeepEqual(GenerateMockHourly(id), GenerateMockHourly(id)) {
			t.Errorf("Expected identical hourly output for %q", id)
		}
		if !reflect.DeepEqual(GenerateMockDaily(id), GenerateMockDaily(id)) {
			t.Errorf("Expected identical daily output for %q", id)
		}
	}
}

func TestGenerateMockWeather_Ranges(t *testing.T) {
	ids := append([]string{}, sampleCityIDs...)
	for i := 0; i < 500; i++ {
		ids = append(ids, fmt.Sprintf("%c%c", rune(32+i%95), rune(40+i)))
	}

	for _, id := range ids {
		w := GenerateMockWeather(id)

		if w.Temperature < 55 || w.Temperature > 85 {
			t.Errorf("%q: temperature %v out of [55,85]", id, w.Temperature)
		}
		if w.Humidity < 50 || w.Humidity >= 80 {
			t.Errorf("%q: humidity %d out of [50,80)", id, w.Humidity)
		}
		if w.WindSpeed < 10 || w.WindSpeed >= 30 {
			t.Errorf("%q: wind speed %v out of [10,30)", id, w.WindSpeed)
		}
		if w.WindDirection < 0 || w.WindDirection >= 360 {
			t.Errorf("%q: wind direction %d out of [0,360)", id, w.WindDirection)
		}
		if w.Pressure < 1000 || w.Pressure >= 1020 {
			t.Errorf("%q: pressure %v out of [1000,1020)", id, w.Pressure)
		}
		if w.UVIndex < 0 || w.UVIndex >= 11 {
			t.Errorf("%q: uv index %d out of [0,11)", id, w.UVIndex)
		}
		if w.Visibility < 10 || w.Visibility >= 20 {
			t.Errorf("%q: visibility %v out of [10,20)", id, w.Visibility)
		}
		if d := w.FeelsLike - w.Temperature; d < -2 || d > 2 {
			t.Errorf("%q: feels-like offset %v out of [-2,2]", id, d)
		}

		found := false
		for _, c := range MockConditions {
			if c.Condition == w.Condition && c.Icon == w.Icon {
				found = true
				if c.PrecipitationChance != w.PrecipitationChance {
					t.Errorf("%q: precipitation %d does not match table value %d for %s",
						id, w.PrecipitationChance, c.PrecipitationChance, c.Condition)
				}
			}
		}
		if !found {
			t.Errorf("%q: condition %q not in mock table", id, w.Condition)
		}
	}
}

func TestGenerateMockHourly(t *testing.T) {
	hourly := GenerateMockHourly("london")

	if len(hourly) != 12 {
		t.Fatalf("Expected 12 hourly steps, got %d", len(hourly))
	}

	for i, h := range hourly {
		wantTime := fmt.Sprintf("%02d:00", i*2)
		if h.Time != wantTime {
			t.Errorf("Step %d: expected time %s, got %s", i, wantTime, h.Time)
		}
		if h.Temperature < 55 || h.Temperature > 85 {
			t.Errorf("Step %d: temperature %v out of range", i, h.Temperature)
		}
	}
}

func TestGenerateMockDaily(t *testing.T) {
	daily := GenerateMockDaily("london")

	if len(daily) != 5 {
		t.Fatalf("Expected 5 days, got %d", len(daily))
	}
	if daily[0].Day != "Today" || daily[1].Day != "Tomorrow" {
		t.Errorf("Unexpected day labels: %s, %s", daily[0].Day, daily[1].Day)
	}

	for _, d := range daily {
		if d.Low > d.High {
			t.Errorf("%s: low %v above high %v", d.Day, d.Low, d.High)
		}
		if d.High < 55 || d.High > 85 {
			t.Errorf("%s: high %v out of range", d.Day, d.High)
		}
	}
}

func TestMockResponse_RoundTripsThroughFromResponse(t *testing.T) {
	resp := MockResponse("paris")
	current, hourly, daily := FromResponse(resp)

	mock := GenerateMockWeather("paris")
	if current.Temperature != mock.Temperature {
		t.Errorf("Expected temperature %v, got %v", mock.Temperature, current.Temperature)
	}
	if current.Humidity != mock.Humidity {
		t.Errorf("Expected humidity %d, got %d", mock.Humidity, current.Humidity)
	}
	if len(hourly) != 12 || len(daily) != 5 {
		t.Errorf("Expected 12 hourly and 5 daily entries, got %d and %d", len(hourly), len(daily))
	}
}
