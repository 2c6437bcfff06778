package event

import (
	"context"
	"testing"

	"github.com/madadgar/backend/internal/domain/fundraising"
	"github.com/madadgar/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func newMetricsFixture(t *testing.T) (*BusinessMetricsHandler, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	metrics, err := telemetry.NewBusinessMetrics(provider.Meter("test"), zap.NewNop())
	require.NoError(t, err)

	return NewBusinessMetricsHandler(metrics), reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	found := make(map[string]metricdata.Metrics)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			found[m.Name] = m
		}
	}
	return found
}

func counterValue(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.NotEmpty(t, sum.DataPoints)
	return sum.DataPoints[0].Value
}

func TestBusinessMetricsHandler_RecordsDonation(t *testing.T) {
	handler, reader := newMetricsFixture(t)

	require.NoError(t, handler.Handle(context.Background(), newDonationEvent()))

	found := collectMetrics(t, reader)
	received, ok := found["madadgar.donations.received"]
	require.True(t, ok)
	assert.Equal(t, int64(1), counterValue(t, received))

	_, ok = found["madadgar.donations.amount"]
	assert.True(t, ok)
}

func TestBusinessMetricsHandler_RecordsFundraiserLifecycle(t *testing.T) {
	handler, reader := newMetricsFixture(t)
	ctx := context.Background()

	f, err := fundraising.NewFundraiser(newDonationEvent().RecipientID, fundraising.PurposeInstitution)
	require.NoError(t, err)
	f.Category = "medical"

	require.NoError(t, handler.Handle(ctx, fundraising.NewFundraiserPublishedEvent(f)))
	require.NoError(t, handler.Handle(ctx, fundraising.NewFundraiserClosedEvent(f)))

	found := collectMetrics(t, reader)
	published, ok := found["madadgar.fundraisers.published"]
	require.True(t, ok)
	assert.Equal(t, int64(1), counterValue(t, published))

	closed, ok := found["madadgar.fundraisers.closed"]
	require.True(t, ok)
	assert.Equal(t, int64(1), counterValue(t, closed))
}

func TestBusinessMetricsHandler_IgnoresUnrelatedEvents(t *testing.T) {
	handler, reader := newMetricsFixture(t)

	f, err := fundraising.NewFundraiser(newDonationEvent().RecipientID, fundraising.PurposeOrganization)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(context.Background(), fundraising.NewFundraiserCreatedEvent(f)))

	found := collectMetrics(t, reader)
	if m, ok := found["madadgar.fundraisers.published"]; ok {
		assert.Zero(t, counterValue(t, m))
	}
}

func TestBusinessMetricsHandler_EventTypes(t *testing.T) {
	handler, _ := newMetricsFixture(t)

	types := handler.EventTypes()
	assert.Contains(t, types, "DonationReceived")
	assert.Contains(t, types, "FundraiserPublished")
	assert.Contains(t, types, "FundraiserClosed")
}
