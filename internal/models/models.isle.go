// FilePath: internal/models/models.isle.go
package models

import (
	"regexp"
	"time"

	"github.com/agrotechfields/islehub/internal/errors"
)

const DefaultSamplingInterval = 5 // minutes

var serialNumberPattern = regexp.MustCompile(`^[A-Z0-9]{10}$`)

// Isle is a registered field device reporting environmental measurements.
// The provisioning hash is the device secret checked during isle-user
// self-registration; like the user password hash it is system-only.
type Isle struct {
	ID               string    `json:"id" db:"id"`
	SerialNumber     string    `json:"serial_number" db:"serial_number"`
	Latitude         float64   `json:"latitude" db:"latitude"`
	Longitude        float64   `json:"longitude" db:"longitude"`
	Altitude         float64   `json:"altitude" db:"altitude"`
	IsItWorking      bool      `json:"is_it_working" db:"is_it_working"`
	SamplingInterval int       `json:"sampling_interval" db:"sampling_interval"`
	ProvisioningHash string    `json:"-" db:"provisioning_hash" readxs:"system" writexs:"system"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// Validate checks the field constraints of an isle record.
func (i *Isle) Validate() error {
	if !serialNumberPattern.MatchString(i.SerialNumber) {
		return errors.NewValidationError("serial number must be exactly 10 uppercase alphanumeric characters", nil)
	}
	if i.Latitude <= -90 || i.Latitude >= 90 {
		return errors.NewValidationError("latitude must be strictly between -90 and 90", nil)
	}
	if i.Longitude <= -180 || i.Longitude > 180 {
		return errors.NewValidationError("longitude must be greater than -180 and at most 180", nil)
	}
	if i.Altitude <= 0 {
		return errors.NewValidationError("altitude must be positive", nil)
	}
	if i.SamplingInterval < 1 || i.SamplingInterval > 3600 {
		return errors.NewValidationError("sampling interval must be between 1 and 3600 minutes", nil)
	}
	return nil
}
