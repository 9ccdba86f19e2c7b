package crop

// Stage is a potato growth phase.
type Stage string

const (
	StageGermination     Stage = "germination"
	StageVegetative      Stage = "vegetative"
	StageTuberInitiation Stage = "tuber_initiation"
	StageTuberBulking    Stage = "tuber_bulking"
	StageMaturation      Stage = "maturation"

	// StagePostHarvest is returned for any offset no bucket contains.
	StagePostHarvest Stage = "post_harvest"
)

// Bucket maps the half-open day range [Start, End) after planting to a stage.
type Bucket struct {
	Stage Stage `json:"stage"`
	Start int   `json:"start"`
	End   int   `json:"end"`
}

// Contains reports whether day falls in [Start, End).
func (b Bucket) Contains(day int) bool {
	return b.Start <= day && day < b.End
}

// Stages is the reference potato calendar, ascending and contiguous.
var Stages = []Bucket{
	{Stage: StageGermination, Start: 0, End: 21},
	{Stage: StageVegetative, Start: 21, End: 50},
	{Stage: StageTuberInitiation, Start: 50, End: 80},
	{Stage: StageTuberBulking, Start: 80, End: 110},
	{Stage: StageMaturation, Start: 110, End: 130},
}

// StageFor returns the first bucket containing daysSincePlanting.
// Offsets before planting match no bucket and therefore also map to
// StagePostHarvest.
func StageFor(daysSincePlanting int) Stage {
	for _, b := range Stages {
		if b.Contains(daysSincePlanting) {
			return b.Stage
		}
	}
	return StagePostHarvest
}

var stageAdvice = map[Stage]string{
	StageGermination:     "Keep the soil moderately moist and hold soil temperature around 10-15°C.",
	StageVegetative:      "Apply nitrogen fertilizer and hill up the rows.",
	StageTuberInitiation: "Water management is critical. Maintain consistent soil moisture.",
	StageTuberBulking:    "Add potassium fertilizer and supply full irrigation.",
	StageMaturation:      "Reduce irrigation and prepare for harvest.",
}

// Advice returns the static management advice for s. Post-harvest has none.
func Advice(s Stage) (string, bool) {
	a, ok := stageAdvice[s]
	return a, ok
}
