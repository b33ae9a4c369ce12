package stamp

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedlink/internal/model"
)

func TestUTCStamp(t *testing.T) {
	d := model.CalendarDate{Year: 2025, Month: 5, Day: 6} // June 6
	got := UTCStamp(d, model.WallClockTime{Hour: 10, Minute: 0}, 2)
	assert.Equal(t, "20250606T080000Z", got)
}

func TestUTCStamp_ZeroOffset(t *testing.T) {
	d := model.CalendarDate{Year: 2025, Month: 0, Day: 1}
	got := UTCStamp(d, model.WallClockTime{Hour: 23, Minute: 59}, 0)
	assert.Equal(t, "20250101T235900Z", got)
}

// Offset subtraction can push the UTC hour below zero. The chosen policy
// normalizes the underflow into a date carry instead of emitting a negative
// hour field; early wall-clock hours land on the previous UTC day. Covered
// exhaustively for wall hours 0 and 1 at the fixed +2 offset.
func TestUTCStamp_UnderflowCarriesDate(t *testing.T) {
	d := model.CalendarDate{Year: 2025, Month: 5, Day: 6} // June 6

	tests := []struct {
		hour, minute int
		want         string
	}{
		{0, 0, "20250605T220000Z"},
		{0, 30, "20250605T223000Z"},
		{0, 59, "20250605T225900Z"},
		{1, 0, "20250605T230000Z"},
		{1, 30, "20250605T233000Z"},
		{1, 59, "20250605T235900Z"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%02d:%02d", tt.hour, tt.minute), func(t *testing.T) {
			got := UTCStamp(d, model.WallClockTime{Hour: tt.hour, Minute: tt.minute}, 2)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUTCStamp_UnderflowCarriesAcrossMonthAndYear(t *testing.T) {
	jan1 := model.CalendarDate{Year: 2025, Month: 0, Day: 1}
	got := UTCStamp(jan1, model.WallClockTime{Hour: 1, Minute: 0}, 2)
	assert.Equal(t, "20241231T230000Z", got)

	mar1 := model.CalendarDate{Year: 2024, Month: 2, Day: 1} // leap February behind it
	got = UTCStamp(mar1, model.WallClockTime{Hour: 0, Minute: 0}, 2)
	assert.Equal(t, "20240229T220000Z", got)
}

func TestUTCStamp_OverflowCarriesDate(t *testing.T) {
	// A negative offset (east of the source zone convention) pushes past 23.
	d := model.CalendarDate{Year: 2025, Month: 5, Day: 6}
	got := UTCStamp(d, model.WallClockTime{Hour: 23, Minute: 30}, -2)
	assert.Equal(t, "20250607T013000Z", got)
}

func TestParseStamp_RoundTrip(t *testing.T) {
	d := model.CalendarDate{Year: 2025, Month: 5, Day: 6}
	w := model.WallClockTime{Hour: 9, Minute: 30}

	s := UTCStamp(d, w, 2)
	got, err := ParseStamp(s)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 6, 7, 30, 0, 0, time.UTC), got)
}
