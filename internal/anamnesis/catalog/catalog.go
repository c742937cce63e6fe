// Package catalog is the single enumeration of questionnaire sections.
//
// Progress, completion and the display endpoints all iterate this list, so a
// section added here is tracked everywhere at once.
package catalog

// SectionID is the stable identifier of a questionnaire section. The remote
// backend tags every question with one of these.
type SectionID string

const (
	Mind             SectionID = "mind"
	Body             SectionID = "body"
	Sleep            SectionID = "sleep"
	Nutrition        SectionID = "nutrition"
	Hydration        SectionID = "hydration"
	PhysicalActivity SectionID = "physical_activity"
	Stress           SectionID = "stress"
	Alcohol          SectionID = "alcohol"
	Smoking          SectionID = "smoking"
	SunExposure      SectionID = "sun_exposure"
	Bowel            SectionID = "bowel"
)

// Kind groups sections for display.
type Kind string

const (
	KindMind  Kind = "mind"
	KindBody  Kind = "body"
	KindHabit Kind = "habit"
)

// Encoding is the answer representation a section exchanges with the backend.
type Encoding string

const (
	// EncodingSymptomScale stores an ordinal 0..4 in answerText.
	EncodingSymptomScale Encoding = "symptom_scale"
	// EncodingSingleChoice stores an opaque option key.
	EncodingSingleChoice Encoding = "single_choice"
)

// Section is one independently tracked part of the questionnaire.
type Section struct {
	ID       SectionID `json:"id"`
	Kind     Kind      `json:"kind"`
	Encoding Encoding  `json:"encoding"`
}

var sections = [...]Section{
	{ID: Mind, Kind: KindMind, Encoding: EncodingSingleChoice},
	{ID: Body, Kind: KindBody, Encoding: EncodingSymptomScale},
	{ID: Sleep, Kind: KindHabit, Encoding: EncodingSingleChoice},
	{ID: Nutrition, Kind: KindHabit, Encoding: EncodingSingleChoice},
	{ID: Hydration, Kind: KindHabit, Encoding: EncodingSingleChoice},
	{ID: PhysicalActivity, Kind: KindHabit, Encoding: EncodingSingleChoice},
	{ID: Stress, Kind: KindHabit, Encoding: EncodingSingleChoice},
	{ID: Alcohol, Kind: KindHabit, Encoding: EncodingSingleChoice},
	{ID: Smoking, Kind: KindHabit, Encoding: EncodingSingleChoice},
	{ID: SunExposure, Kind: KindHabit, Encoding: EncodingSingleChoice},
	{ID: Bowel, Kind: KindHabit, Encoding: EncodingSingleChoice},
}

// Len is the number of tracked sections.
const Len = len(sections)

// All returns the sections in display order. The slice is a copy.
func All() []Section {
	out := make([]Section, len(sections))
	copy(out, sections[:])
	return out
}

// IDs returns the section identifiers in display order.
func IDs() []SectionID {
	out := make([]SectionID, len(sections))
	for i, s := range sections {
		out[i] = s.ID
	}
	return out
}

// Lookup finds a section by identifier.
func Lookup(id SectionID) (Section, bool) {
	for _, s := range sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Habits returns the habit sections in display order.
func Habits() []Section {
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		if s.Kind == KindHabit {
			out = append(out, s)
		}
	}
	return out
}

func (id SectionID) String() string {
	return string(id)
}
