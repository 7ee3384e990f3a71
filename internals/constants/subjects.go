package constants

// Subjects taught by the school. Values are the stable API identifiers,
// labels are the user-facing Russian names shown by the portals.
const (
	SubjectMath      = "math"
	SubjectPhysics   = "physics"
	SubjectChemistry = "chemistry"
	SubjectRussian   = "russian"
	SubjectEnglish   = "english"
)

var AllSubjects = []string{
	SubjectMath,
	SubjectPhysics,
	SubjectChemistry,
	SubjectRussian,
	SubjectEnglish,
}

var SubjectLabels = map[string]string{
	SubjectMath:      "Математика",
	SubjectPhysics:   "Физика",
	SubjectChemistry: "Химия",
	SubjectRussian:   "Русский язык",
	SubjectEnglish:   "Английский язык",
}

func IsValidSubject(subject string) bool {
	for _, s := range AllSubjects {
		if s == subject {
			return true
		}
	}
	return false
}

// SubjectLabel falls back to the raw identifier for unknown values.
func SubjectLabel(subject string) string {
	if label, ok := SubjectLabels[subject]; ok {
		return label
	}
	return subject
}
