package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		attendance  Attendance
		wantWarning WarningLevel
		wantTone    string
	}{
		{
			name:        "present with no continuous leave",
			attendance:  Attendance{Status: StatusPresent, ContinuousLeaves: 0},
			wantWarning: WarningNone,
			wantTone:    ToneOK,
		},
		{
			name:        "on leave below the limit",
			attendance:  Attendance{Status: StatusOnLeave, ContinuousLeaves: 3},
			wantWarning: WarningMild,
			wantTone:    ToneCaution,
		},
		{
			name:        "over the limit overrides present",
			attendance:  Attendance{Status: StatusPresent, ContinuousLeaves: 6},
			wantWarning: WarningSevere,
			wantTone:    ToneCritical,
		},
		{
			name:        "over the limit while on leave",
			attendance:  Attendance{Status: StatusOnLeave, ContinuousLeaves: 9},
			wantWarning: WarningSevere,
			wantTone:    ToneCritical,
		},
		{
			name:        "exactly at the limit stays mild",
			attendance:  Attendance{Status: StatusOnLeave, ContinuousLeaves: 5},
			wantWarning: WarningMild,
			wantTone:    ToneCaution,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.attendance)
			assert.Equal(t, tt.wantWarning, got.WarningLevel)
			assert.Equal(t, tt.wantTone, got.Tone)
			assert.Equal(t, tt.attendance.Status, got.DisplayStatus)
		})
	}
}
