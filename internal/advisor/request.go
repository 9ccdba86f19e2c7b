package advisor

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/potato-farm-advisor/internal/common"
	"github.com/i474232898/potato-farm-advisor/internal/weather"
)

var validate = validator.New()

// ErrInvalidRequest wraps every input validation failure.
var ErrInvalidRequest = errors.New("invalid analysis request")

// Bounds on the fetch window and planting date.
const (
	MinDays = 30
	MaxDays = 180
)

// EarliestPlantingDate is the oldest planting date accepted.
var EarliestPlantingDate = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// Request is the user input for one analysis pass.
type Request struct {
	Coordinate   weather.Coordinate `json:"coordinate"`
	PlantingDate time.Time          `json:"plantingDate" validate:"required"`
	Days         int                `json:"days" validate:"min=30,max=180"`
	APIKey       string             `json:"-"`
}

// Range is the fetch window: planting day through planting day + Days.
func (r Request) Range() weather.DateRange {
	return weather.NewDateRange(r.PlantingDate, r.Days)
}

// Validate checks coordinate bounds, the day range and that the planting date
// lies between EarliestPlantingDate and today.
func (r Request) Validate(now time.Time) error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return validatePlantingDate(r.PlantingDate, now)
}

func validatePlantingDate(planting, now time.Time) error {
	d := common.Midnight(planting)
	if d.Before(EarliestPlantingDate) {
		return fmt.Errorf("%w: planting date %s is before %s", ErrInvalidRequest,
			d.Format(common.ISODateLayout), EarliestPlantingDate.Format(common.ISODateLayout))
	}
	if d.After(common.Midnight(now)) {
		return fmt.Errorf("%w: planting date %s is in the future", ErrInvalidRequest, d.Format(common.ISODateLayout))
	}
	return nil
}

// ValidateField checks a coordinate and planting date without a day range.
func ValidateField(coord weather.Coordinate, planting time.Time, now time.Time) error {
	if err := validate.Struct(coord); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return validatePlantingDate(planting, now)
}
