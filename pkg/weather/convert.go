package weather

import (
	"math"

	"github.com/sguter90/homenet/pkg/models"
)

// FromResponse maps a backend weather response into display records
func FromResponse(resp models.WeatherResponse) (models.Weather, []models.HourlyForecast, []models.DailyForecast) {
	cur := resp.Current
	cond := GetWeatherCondition(cur.WeatherCode)

	current := models.Weather{
		Temperature:         round1(cur.Temperature),
		FeelsLike:           round1(cur.ApparentTemperature),
		Condition:           cond.Condition,
		Icon:                cond.Icon,
		Humidity:            cur.Humidity,
		WindSpeed:           round1(cur.WindSpeed),
		WindDirection:       cur.WindDirection,
		Pressure:            round1(cur.Pressure),
		UVIndex:             int(math.Round(cur.UVIndex)),
		Visibility:          round1(cur.Visibility),
		PrecipitationChance: cur.PrecipitationProbability,
		WeatherCode:         cur.WeatherCode,
	}

	hourly := make([]models.HourlyForecast, 0, len(resp.Hourly))
	for _, h := range resp.Hourly {
		c := GetWeatherCondition(h.WeatherCode)
		hourly = append(hourly, models.HourlyForecast{
			Time:                h.Time,
			Temperature:         round1(h.Temperature),
			Condition:           c.Condition,
			Icon:                c.Icon,
			PrecipitationChance: h.PrecipitationProbability,
		})
	}

	daily := make([]models.DailyForecast, 0, len(resp.Daily))
	for _, d := range resp.Daily {
		c := GetWeatherCondition(d.WeatherCode)
		daily = append(daily, models.DailyForecast{
			Day:                 d.Date,
			High:                round1(d.TemperatureMax),
			Low:                 round1(d.TemperatureMin),
			Condition:           c.Condition,
			Icon:                c.Icon,
			PrecipitationChance: d.PrecipitationProbability,
		})
	}

	return current, hourly, daily
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
