package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string   `json:"name" validate:"required,max=10"`
	Weight float64  `json:"weight" validate:"gte=0"`
	Stars  int      `json:"rating" validate:"min=1,max=5"`
	Format string   `json:"format" validate:"omitempty,oneof=json table"`
	Tags   []string `json:"tags" validate:"dive,required"`
}

func TestValidateStruct_OK(t *testing.T) {
	err := ValidateStruct(&sample{Name: "Greenwood", Weight: 0, Stars: 5, Tags: []string{"parks"}})
	assert.NoError(t, err)
}

func TestValidateStruct_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   sample
		field   string
		message string
	}{
		{"missing name", sample{Stars: 3}, "name", "name is required"},
		{"long name", sample{Name: "a very long name", Stars: 3}, "name", "name must be at most 10 characters"},
		{"negative weight", sample{Name: "x", Weight: -1, Stars: 3}, "weight", "weight must be greater than or equal to 0"},
		{"stars too high", sample{Name: "x", Stars: 6}, "rating", "rating must be at most 5"},
		{"stars too low", sample{Name: "x", Stars: 0}, "rating", "rating must be at least 1"},
		{"bad format", sample{Name: "x", Stars: 1, Format: "xml"}, "format", "format must be one of: json table"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			require.Error(t, err)

			var ve *RequestValidationError
			require.True(t, errors.As(err, &ve))
			require.Len(t, ve.Fields, 1)
			assert.Equal(t, tt.field, ve.Fields[0].Field)
			assert.Equal(t, tt.message, ve.Fields[0].Message)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestValidateStruct_MultipleErrors(t *testing.T) {
	err := ValidateStruct(&sample{Weight: -2, Stars: 9})

	var ve *RequestValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Fields, 3)
	assert.Contains(t, err.Error(), "; ")
}

func TestGetValidator_Singleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}
