package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndSpanWithErrCheck(t *testing.T) {
	// noop tracer provider by default, just make sure nothing panics
	_, span := GlobalTracer.Start(context.Background(), "test.ok")
	EndSpanWithErrCheck(span, nil)

	_, span = GlobalTracer.Start(context.Background(), "test.err")
	EndSpanWithErrCheck(span, errors.New("db down"))
	assert.False(t, span.IsRecording())
}

func TestHoneycombSetup_Disabled(t *testing.T) {
	shutdown, err := HoneycombSetup(false, "fitlog-test", nil)
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	shutdown()
}
