package attendance

const (
	StatusPresent = "PRESENT"
	StatusOnLeave = "ON_LEAVE"
)

// Continuous-leave days above this raise the severe warning.
const ContinuousLeaveLimit = 5

type WarningLevel string

const (
	WarningNone   WarningLevel = "NONE"
	WarningMild   WarningLevel = "MILD"
	WarningSevere WarningLevel = "SEVERE"
)

// Display tones for UI consumers.
const (
	ToneOK       = "ok"
	ToneCaution  = "caution"
	ToneCritical = "critical"
)

type Classification struct {
	DisplayStatus string
	WarningLevel  WarningLevel
	Tone          string
}

// Classify derives the warning level from the raw counts. Continuous leave
// past the limit is severe regardless of the Present/OnLeave status. Always
// computed fresh on read, never cached.
func Classify(a Attendance) Classification {
	if a.ContinuousLeaves > ContinuousLeaveLimit {
		return Classification{
			DisplayStatus: a.Status,
			WarningLevel:  WarningSevere,
			Tone:          ToneCritical,
		}
	}
	if a.Status == StatusOnLeave {
		return Classification{
			DisplayStatus: a.Status,
			WarningLevel:  WarningMild,
			Tone:          ToneCaution,
		}
	}
	return Classification{
		DisplayStatus: a.Status,
		WarningLevel:  WarningNone,
		Tone:          ToneOK,
	}
}
