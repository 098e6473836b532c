// FilePath: internal/models/models.measure.go
package models

import (
	"time"

	"github.com/agrotechfields/islehub/internal/errors"
)

// Measure is one timestamped environmental reading set submitted by an isle.
// IsleID and ID are fixed at creation and survive any later update.
type Measure struct {
	ID            string    `json:"id" db:"id"`
	IsleID        string    `json:"isle_id" db:"isle_id"`
	AirTemp       float64   `json:"air_temp" db:"air_temp"`
	GndTemp       float64   `json:"gnd_temp" db:"gnd_temp"`
	WindSpeed     float64   `json:"wind_speed" db:"wind_speed"`
	WindDirection float64   `json:"wind_direction" db:"wind_direction"`
	Irradiance    float64   `json:"irradiance" db:"irradiance"`
	Pressure      float64   `json:"pressure" db:"pressure"`
	AirHumidity   float64   `json:"air_humidity" db:"air_humidity"`
	GndHumidity   float64   `json:"gnd_humidity" db:"gnd_humidity"`
	Precipitation float64   `json:"precipitation" db:"precipitation"`
	RainIntensity float64   `json:"rain_intensity" db:"rain_intensity"`
	Timestamp     time.Time `json:"timestamp" db:"timestamp"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type measureRange struct {
	name     string
	value    float64
	min, max float64
	openMax  bool // max is exclusive
}

// Validate checks the measured fields against their physical ranges.
func (m *Measure) Validate() error {
	ranges := []measureRange{
		{name: "air_temp", value: m.AirTemp, min: -20, max: 50},
		{name: "gnd_temp", value: m.GndTemp, min: -30, max: 60},
		{name: "wind_speed", value: m.WindSpeed, min: 0, max: 30},
		{name: "wind_direction", value: m.WindDirection, min: 0, max: 360, openMax: true},
		{name: "irradiance", value: m.Irradiance, min: 0, max: 1500},
		{name: "pressure", value: m.Pressure, min: 100, max: 1200},
		{name: "air_humidity", value: m.AirHumidity, min: 0, max: 100},
		{name: "gnd_humidity", value: m.GndHumidity, min: 0, max: 100},
		{name: "precipitation", value: m.Precipitation, min: 0, max: 1000},
		{name: "rain_intensity", value: m.RainIntensity, min: 0, max: 1000},
	}
	for _, r := range ranges {
		if r.value < r.min || r.value > r.max || (r.openMax && r.value == r.max) {
			return errors.NewValidationError(r.name+" is out of range", nil).WithDetails(map[string]any{
				"field": r.name,
				"value": r.value,
			})
		}
	}
	return nil
}
