package match

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmenities(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{name: "empty", raw: "", want: []string{}},
		{name: "blank", raw: "   ", want: []string{}},
		{name: "delimited", raw: "parks,schools,restaurants", want: []string{"parks", "restaurants", "schools"}},
		{name: "delimited with spaces", raw: " parks , cafes ", want: []string{"cafes", "parks"}},
		{name: "single tag", raw: "nightlife", want: []string{"nightlife"}},
		{name: "duplicates collapse", raw: "parks,parks", want: []string{"parks"}},
		{name: "json array", raw: `["cafes","public_transport","nightlife"]`, want: []string{"cafes", "nightlife", "public_transport"}},
		{name: "empty json array", raw: `[]`, want: []string{}},
		{name: "json null", raw: `null`, wantErr: true},
		{name: "json keeps commas and spaces", raw: `["parks, playgrounds"," cafes"]`, want: []string{" cafes", "parks, playgrounds"}},
		{name: "trailing comma", raw: "parks,", wantErr: true},
		{name: "double comma", raw: "parks,,cafes", wantErr: true},
		{name: "broken json", raw: `["parks",`, wantErr: true},
		{name: "json object", raw: `{"parks":true}`, wantErr: true},
		{name: "json numbers", raw: `[1,2]`, wantErr: true},
		{name: "json empty tag", raw: `["parks",""]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmenities(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedData))

				var dataErr *MalformedDataError
				require.True(t, errors.As(err, &dataErr))
				assert.Equal(t, "amenities", dataErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Sorted())
		})
	}
}

func TestAmenitySet_String(t *testing.T) {
	s := NewAmenitySet("schools", "parks")
	assert.Equal(t, "parks,schools", s.String())

	round, err := ParseAmenities(s.String())
	require.NoError(t, err)
	assert.Equal(t, s, round)
}

func TestAmenitySet_JSON(t *testing.T) {
	data, err := json.Marshal(NewAmenitySet("schools", "parks"))
	require.NoError(t, err)
	assert.JSONEq(t, `["parks","schools"]`, string(data))

	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "array", input: `["parks","cafes"]`, want: []string{"cafes", "parks"}},
		{name: "delimited string", input: `"parks,cafes"`, want: []string{"cafes", "parks"}},
		{name: "encoded json string", input: `"[\"parks\"]"`, want: []string{"parks"}},
		{name: "null", input: `null`, want: []string{}},
		{name: "number", input: `42`, wantErr: true},
		{name: "bad delimited string", input: `"parks,,cafes"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s AmenitySet
			err := json.Unmarshal([]byte(tt.input), &s)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrMalformedData), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Sorted())
		})
	}
}

func TestMalformedDataError_Message(t *testing.T) {
	err := &MalformedDataError{NeighborhoodID: "7", Field: "crime_rate", Reason: "must be >= 0, got -1"}
	assert.Equal(t, "neighborhood 7: malformed crime_rate: must be >= 0, got -1", err.Error())

	wrapped := &MalformedDataError{Field: "amenities", Reason: "bad", Err: errors.New("boom")}
	assert.Equal(t, "malformed amenities: bad: boom", wrapped.Error())
	assert.Equal(t, "boom", errors.Unwrap(wrapped).Error())
}
