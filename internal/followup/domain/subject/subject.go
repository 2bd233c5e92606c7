package subject

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidReference   = errors.New("invalid reference date/time")
	ErrInvalidDisposition = errors.New("invalid disposition")
	ErrInvalidRiskTier    = errors.New("invalid risk tier")
)

// Disposition categorizes where a patient went after discharge.
type Disposition string

const (
	DispositionHome           Disposition = "home"
	DispositionHomeHealth     Disposition = "home_health"
	DispositionSkilledNursing Disposition = "skilled_nursing_facility"
	DispositionAcuteRehab     Disposition = "acute_rehabilitation"
	DispositionHospice        Disposition = "hospice"
)

// ParseDisposition parses a disposition from its string form.
func ParseDisposition(s string) (Disposition, error) {
	switch Disposition(s) {
	case DispositionHome, DispositionHomeHealth, DispositionSkilledNursing,
		DispositionAcuteRehab, DispositionHospice:
		return Disposition(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDisposition, s)
	}
}

// RiskTier is the readmission risk stratification assigned at discharge.
type RiskTier string

const (
	RiskLow      RiskTier = "low"
	RiskModerate RiskTier = "moderate"
	RiskHigh     RiskTier = "high"
)

// ParseRiskTier parses a risk tier from its string form.
func ParseRiskTier(s string) (RiskTier, error) {
	switch RiskTier(s) {
	case RiskLow, RiskModerate, RiskHigh:
		return RiskTier(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRiskTier, s)
	}
}

// Subject is a discharged patient record as supplied by the intake source.
// The reference date/time is kept in its raw source form; combining and
// validating it is deferred to ReferenceEventTime so a malformed value
// surfaces exactly once, at generation time.
type Subject struct {
	ID            string      `json:"id"`
	ReferenceDate string      `json:"reference_date"`           // YYYY-MM-DD
	ReferenceTime string      `json:"reference_time,omitempty"` // HH:MM, defaults to midnight
	Disposition   Disposition `json:"disposition"`
	RiskTier      RiskTier    `json:"risk_tier"`
}

// ReferenceEventTime combines the reference date with the optional clock
// time (default 00:00) into a naive local wall-clock timestamp. No timezone
// conversion is performed.
func (s Subject) ReferenceEventTime() (time.Time, error) {
	clock := s.ReferenceTime
	if clock == "" {
		clock = "00:00"
	}
	ref, err := time.ParseInLocation("2006-01-02 15:04", s.ReferenceDate+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("subject %s: %w: date=%q time=%q",
			s.ID, ErrInvalidReference, s.ReferenceDate, s.ReferenceTime)
	}
	return ref, nil
}
