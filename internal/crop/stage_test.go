package crop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageForBoundaries(t *testing.T) {
	cases := []struct {
		day  int
		want Stage
	}{
		{0, StageGermination},
		{20, StageGermination},
		{21, StageVegetative},
		{49, StageVegetative},
		{50, StageTuberInitiation},
		{79, StageTuberInitiation},
		{80, StageTuberBulking},
		{109, StageTuberBulking},
		{110, StageMaturation},
		{129, StageMaturation},
		{130, StagePostHarvest},
		{400, StagePostHarvest},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, StageFor(tc.day), "day %d", tc.day)
	}
}

// Days before planting fall through every bucket and are labelled
// post_harvest. This mirrors the observed behaviour of the stage calendar
// and is kept as-is.
func TestStageForBeforePlantingIsPostHarvest(t *testing.T) {
	assert.Equal(t, StagePostHarvest, StageFor(-1))
	assert.Equal(t, StagePostHarvest, StageFor(-5))
}

func TestStagesAreContiguous(t *testing.T) {
	assert.Equal(t, 0, Stages[0].Start)
	for i := 1; i < len(Stages); i++ {
		assert.Equal(t, Stages[i-1].End, Stages[i].Start, "gap before %s", Stages[i].Stage)
		assert.Less(t, Stages[i].Start, Stages[i].End)
	}
}

func TestAdvice(t *testing.T) {
	for _, b := range Stages {
		a, ok := Advice(b.Stage)
		assert.True(t, ok, "stage %s", b.Stage)
		assert.NotEmpty(t, a)
	}

	a, ok := Advice(StageTuberBulking)
	assert.True(t, ok)
	assert.Contains(t, a, "potassium")
	assert.Contains(t, a, "irrigation")

	_, ok = Advice(StagePostHarvest)
	assert.False(t, ok)
}
