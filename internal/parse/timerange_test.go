package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedlink/internal/model"
)

func wc(h, m int) model.WallClockTime { return model.WallClockTime{Hour: h, Minute: m} }

func TestTimeRangeText_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want model.TimeRange
	}{
		{"range with en-dash and label", "10:00 – 11:00 CEST", model.TimeRange{Start: wc(10, 0), End: wc(11, 0)}},
		{"range with hyphen", "10:00 - 11:00", model.TimeRange{Start: wc(10, 0), End: wc(11, 0)}},
		{"range glued to separator", "9:15-10:45", model.TimeRange{Start: wc(9, 15), End: wc(10, 45)}},
		{"start only gets hour default", "10:00", model.TimeRange{Start: wc(10, 0), End: wc(11, 0)}},
		{"start only with label", "10:00 CEST", model.TimeRange{Start: wc(10, 0), End: wc(11, 0)}},
		{"single-digit hour", "9:05", model.TimeRange{Start: wc(9, 5), End: wc(10, 5)}},
		{"default end wraps past midnight", "23:30", model.TimeRange{Start: wc(23, 30), End: wc(0, 30)}},
		{"surrounding whitespace", "  14:00 – 15:30 CEST  ", model.TimeRange{Start: wc(14, 0), End: wc(15, 30)}},
		// Permissive contract: out-of-range minutes pass through as-is.
		{"minute out of range passes through", "10:75", model.TimeRange{Start: wc(10, 75), End: wc(11, 75)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeRangeText(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeRangeText_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"words only", "all day"},
		{"missing minutes", "10:"},
		{"single-digit minutes", "10:5"},
		{"separator without end", "10:00 –"},
		{"separator without end, label after", "10:00 – CEST"},
		{"three-digit hour", "100:00"},
		{"trailing garbage", "10:00 – 11:00 CEST extra!"},
		{"no colon", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TimeRangeText(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnparseableTime)
		})
	}
}

func TestTimeRangeText_EndBeforeStartNotValidated(t *testing.T) {
	// The contract explicitly skips ordering validation.
	got, err := TimeRangeText("15:00 – 09:00")
	require.NoError(t, err)
	assert.Equal(t, wc(15, 0), got.Start)
	assert.Equal(t, wc(9, 0), got.End)
}
