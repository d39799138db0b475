package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_RegistersOnOwnRegistry(t *testing.T) {
	m1, reg1 := NewTestManagerAndRegistry()
	// a second manager on a fresh registry must not collide
	m2, _ := NewTestManagerAndRegistry()

	m1.CounterWorkoutsLogged.Inc()
	m1.CounterWorkoutsLogged.Inc()
	m2.CounterWorkoutsLogged.Inc()

	assert.Equal(t, float64(2), testutil.ToFloat64(m1.CounterWorkoutsLogged))
	assert.Equal(t, float64(1), testutil.ToFloat64(m2.CounterWorkoutsLogged))

	m1.CounterRequests.WithLabelValues("GET", "200").Inc()
	count, err := testutil.GatherAndCount(reg1, "fitlog_test_server_request")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSetupPrometheus(t *testing.T) {
	reg := SetupPrometheus()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}
