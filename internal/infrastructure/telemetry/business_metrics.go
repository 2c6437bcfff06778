package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics records campaign and donation level metrics.
// All amounts are reported in PKR.
type BusinessMetrics struct {
	logger *zap.Logger

	donationsReceived  metric.Int64Counter
	donationsDuplicate metric.Int64Counter
	donationAmount     metric.Float64Histogram
	tipAmount          metric.Float64Histogram

	fundraisersPublished metric.Int64Counter
	fundraisersClosed    metric.Int64Counter
	publishGateFailures  metric.Int64Counter
}

// NewBusinessMetrics creates the domain-level metric instruments.
func NewBusinessMetrics(meter metric.Meter, logger *zap.Logger) (*BusinessMetrics, error) {
	bm := &BusinessMetrics{logger: logger}

	var err error

	bm.donationsReceived, err = meter.Int64Counter(
		"madadgar.donations.received",
		metric.WithDescription("Number of donations recorded"),
		metric.WithUnit("{donation}"),
	)
	if err != nil {
		return nil, err
	}

	bm.donationsDuplicate, err = meter.Int64Counter(
		"madadgar.donations.duplicate",
		metric.WithDescription("Number of donation submissions replayed via idempotency key"),
		metric.WithUnit("{donation}"),
	)
	if err != nil {
		return nil, err
	}

	bm.donationAmount, err = meter.Float64Histogram(
		"madadgar.donations.amount",
		metric.WithDescription("Distribution of donation amounts"),
		metric.WithUnit("PKR"),
		metric.WithExplicitBucketBoundaries(100, 500, 1000, 5000, 10000, 50000, 100000, 500000),
	)
	if err != nil {
		return nil, err
	}

	bm.tipAmount, err = meter.Float64Histogram(
		"madadgar.donations.tip_amount",
		metric.WithDescription("Distribution of platform tips"),
		metric.WithUnit("PKR"),
		metric.WithExplicitBucketBoundaries(0, 50, 100, 500, 1000, 5000),
	)
	if err != nil {
		return nil, err
	}

	bm.fundraisersPublished, err = meter.Int64Counter(
		"madadgar.fundraisers.published",
		metric.WithDescription("Number of fundraisers published"),
		metric.WithUnit("{fundraiser}"),
	)
	if err != nil {
		return nil, err
	}

	bm.fundraisersClosed, err = meter.Int64Counter(
		"madadgar.fundraisers.closed",
		metric.WithDescription("Number of fundraisers closed"),
		metric.WithUnit("{fundraiser}"),
	)
	if err != nil {
		return nil, err
	}

	bm.publishGateFailures, err = meter.Int64Counter(
		"madadgar.fundraisers.publish_gate_failures",
		metric.WithDescription("Number of publish attempts rejected by readiness checks"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// RecordDonation records a received donation and its amounts.
func (bm *BusinessMetrics) RecordDonation(ctx context.Context, method string, amount, tip decimal.Decimal) {
	if bm == nil {
		return
	}
	attrs := metric.WithAttributes(AttrDonationMethod.String(method))
	bm.donationsReceived.Add(ctx, 1, attrs)
	bm.donationAmount.Record(ctx, amount.InexactFloat64(), attrs)
	if tip.IsPositive() {
		bm.tipAmount.Record(ctx, tip.InexactFloat64(), attrs)
	}
}

// RecordDuplicateDonation records a submission answered from the idempotency store.
func (bm *BusinessMetrics) RecordDuplicateDonation(ctx context.Context, method string) {
	if bm == nil {
		return
	}
	bm.donationsDuplicate.Add(ctx, 1, metric.WithAttributes(AttrDonationMethod.String(method)))
}

// RecordFundraiserPublished records a successful publish.
func (bm *BusinessMetrics) RecordFundraiserPublished(ctx context.Context, category, purpose string) {
	if bm == nil {
		return
	}
	bm.fundraisersPublished.Add(ctx, 1, metric.WithAttributes(
		AttrFundraiserCategory.String(category),
		AttrFundraiserPurpose.String(purpose),
	))
}

// RecordFundraiserClosed records a fundraiser close.
func (bm *BusinessMetrics) RecordFundraiserClosed(ctx context.Context, category string) {
	if bm == nil {
		return
	}
	bm.fundraisersClosed.Add(ctx, 1, metric.WithAttributes(AttrFundraiserCategory.String(category)))
}

// RecordPublishGateFailure records a publish attempt that failed a readiness check.
func (bm *BusinessMetrics) RecordPublishGateFailure(ctx context.Context, reason string) {
	if bm == nil {
		return
	}
	bm.publishGateFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
