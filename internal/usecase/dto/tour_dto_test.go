package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tour-microservice/internal/pkg/validator"
)

func intPtr(v int) *int { return &v }

func TestTourRequest_ToAggregateDepartureDuration(t *testing.T) {
	req := TourRequest{
		Title:        "Oaxaca",
		DurationDays: 6,
		Departures: []DepartureInput{
			{},
			{ID: 3, DurationDays: intPtr(4)},
		},
	}

	agg := req.ToAggregate()
	require.Len(t, agg.Departures, 2)
	assert.Equal(t, 6, agg.Departures[0].DurationDays)
	assert.Equal(t, 4, agg.Departures[1].DurationDays)
}

func TestDepartureInput_DurationValidation(t *testing.T) {
	assert.NoError(t, validator.Validate(DepartureInput{}))
	assert.NoError(t, validator.Validate(DepartureInput{ID: 3, DurationDays: intPtr(0)}))
	assert.Error(t, validator.Validate(DepartureInput{DurationDays: intPtr(-1)}))
	assert.Error(t, validator.Validate(DepartureInput{DurationDays: intPtr(400)}))
}
