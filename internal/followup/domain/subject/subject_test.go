package subject_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/aftercare/internal/followup/domain/subject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDisposition(t *testing.T) {
	valid := []string{
		"home", "home_health", "skilled_nursing_facility",
		"acute_rehabilitation", "hospice",
	}
	for _, s := range valid {
		t.Run(s, func(t *testing.T) {
			d, err := subject.ParseDisposition(s)
			require.NoError(t, err)
			assert.Equal(t, subject.Disposition(s), d)
		})
	}

	_, err := subject.ParseDisposition("outpatient")
	require.Error(t, err)
	assert.ErrorIs(t, err, subject.ErrInvalidDisposition)
}

func TestParseRiskTier(t *testing.T) {
	for _, s := range []string{"low", "moderate", "high"} {
		t.Run(s, func(t *testing.T) {
			r, err := subject.ParseRiskTier(s)
			require.NoError(t, err)
			assert.Equal(t, subject.RiskTier(s), r)
		})
	}

	_, err := subject.ParseRiskTier("critical")
	require.Error(t, err)
	assert.ErrorIs(t, err, subject.ErrInvalidRiskTier)
}

func TestSubject_ReferenceEventTime(t *testing.T) {
	subj := subject.Subject{
		ID:            "MRN-1042",
		ReferenceDate: "2026-01-14",
		ReferenceTime: "10:00",
	}

	ref, err := subj.ReferenceEventTime()

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 14, 10, 0, 0, 0, time.Local), ref)
}

func TestSubject_ReferenceEventTime_DefaultsToMidnight(t *testing.T) {
	subj := subject.Subject{
		ID:            "MRN-1042",
		ReferenceDate: "2026-01-14",
	}

	ref, err := subj.ReferenceEventTime()

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 14, 0, 0, 0, 0, time.Local), ref)
}

func TestSubject_ReferenceEventTime_Malformed(t *testing.T) {
	tests := []struct {
		name string
		subj subject.Subject
	}{
		{"bad date", subject.Subject{ID: "MRN-9", ReferenceDate: "14/01/2026"}},
		{"bad time", subject.Subject{ID: "MRN-9", ReferenceDate: "2026-01-14", ReferenceTime: "25:99"}},
		{"empty date", subject.Subject{ID: "MRN-9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.subj.ReferenceEventTime()
			require.Error(t, err)
			assert.ErrorIs(t, err, subject.ErrInvalidReference)
			assert.Contains(t, err.Error(), "MRN-9") // identifies the subject
		})
	}
}
