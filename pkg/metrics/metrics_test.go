package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("hospital", reg)

	m.Bookings.WithLabelValues(BookingAccepted).Inc()
	m.Bookings.WithLabelValues(BookingSlotFull).Add(2)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Bookings.WithLabelValues(BookingAccepted)))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Bookings.WithLabelValues(BookingSlotFull)))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "hospital_appointment_bookings_total")
}

func TestNewNopInstancesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNop()
		NewNop()
	})
}
