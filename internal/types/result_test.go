package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParameterResult_Validate_Additive(t *testing.T) {
	r := ParameterResult{Code: "keyword.required", Kind: KindAdditive, Points: 12, MaxPoints: 20}
	assert.NoError(t, r.Validate())

	r.Points = 0
	assert.NoError(t, r.Validate())
	r.Points = 20
	assert.NoError(t, r.Validate())

	r.Points = -0.1
	assert.Error(t, r.Validate())
	r.Points = 20.1
	assert.Error(t, r.Validate())
}

func TestParameterResult_Validate_Penalty(t *testing.T) {
	r := ParameterResult{Code: "penalty.employment_gaps", Kind: KindPenalty, Points: -6, MaxPoints: 10}
	assert.NoError(t, r.Validate())

	r.Points = 0
	assert.NoError(t, r.Validate())
	r.Points = -10
	assert.NoError(t, r.Validate())

	// Penalties never award positive points.
	r.Points = 1
	assert.Error(t, r.Validate())
	r.Points = -10.5
	assert.Error(t, r.Validate())
}

func TestParameterResult_Validate_BadShape(t *testing.T) {
	r := ParameterResult{Code: "x", Kind: KindAdditive, MaxPoints: -1}
	assert.Error(t, r.Validate())

	r = ParameterResult{Code: "x", Kind: "bonus", MaxPoints: 5}
	assert.Error(t, r.Validate())
}
