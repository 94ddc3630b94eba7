package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/mangrove-one/MangroveMarkets/domain"
	"github.com/mangrove-one/MangroveMarkets/domain/workerpool"
	"github.com/mangrove-one/MangroveMarkets/log"
)

// Router fans quote requests out to venue adapters and selects the best quote.
// The adapter set is fixed at construction and read-only afterwards.
type Router struct {
	adapters        []domain.VenueAdapter
	platformFeeRate decimal.Decimal
	adapterTimeout  time.Duration

	logger log.Logger
}

const (
	tracerName = "dex-router"

	quoteModeSingle    = "single"
	quoteModeAggregate = "aggregate"

	outcomeOK = "ok"

	operationGetPairs = "get_pairs"
	operationGetQuote = "get_quote"
)

var (
	tracer = otel.Tracer(tracerName)

	// DefaultPlatformFeeRate is the aggregator markup as a fraction of the input amount.
	DefaultPlatformFeeRate = decimal.RequireFromString("0.0005")
)

// NewRouter returns a router over adapters, in routing order.
// adapterTimeout bounds every single adapter call; zero disables the bound.
// Errors if two adapters share a venue id.
func NewRouter(adapters []domain.VenueAdapter, platformFeeRate decimal.Decimal, adapterTimeout time.Duration, logger log.Logger) (*Router, error) {
	seen := make(map[string]struct{}, len(adapters))
	for _, adapter := range adapters {
		if _, ok := seen[adapter.VenueID()]; ok {
			return nil, fmt.Errorf("duplicate venue id (%s)", adapter.VenueID())
		}
		seen[adapter.VenueID()] = struct{}{}
	}

	if logger == nil {
		logger = &log.NoOpLogger{}
	}

	return &Router{
		adapters:        adapters,
		platformFeeRate: platformFeeRate,
		adapterTimeout:  adapterTimeout,
		logger:          logger,
	}, nil
}

// Adapters returns the registered adapters in routing order.
func (r *Router) Adapters() []domain.VenueAdapter {
	return r.adapters
}

// ListVenues returns one venue per adapter, in registration order.
// Pairs of all adapters are fetched concurrently. A venue whose pairs cannot be fetched
// is still listed, with no supported pairs; listing never fails.
func (r *Router) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	ctx, span := tracer.Start(ctx, "Router.ListVenues")
	defer span.End()

	jobs := make([]workerpool.Job[[]domain.TradingPair], 0, len(r.adapters))
	for _, adapter := range r.adapters {
		jobs = append(jobs, r.pairsJob(adapter))
	}

	results := workerpool.RunAll(ctx, jobs, workerpool.JobTimeout(r.adapterTimeout))

	venues := make([]domain.Venue, 0, len(r.adapters))
	for i, adapter := range r.adapters {
		supportedPairsCount := 0
		if err := results[i].Err; err != nil {
			venueErr := r.venueError(adapter.VenueID(), err)
			r.logger.Debug("venue pairs unavailable during listing",
				zap.String("venue_id", adapter.VenueID()),
				zap.Error(venueErr),
			)
		} else {
			supportedPairsCount = len(results[i].Result)
		}

		venues = append(venues, domain.Venue{
			ID:                  adapter.VenueID(),
			Name:                adapter.Name(),
			Chain:               adapter.Chain(),
			Status:              adapter.Status(),
			SupportedPairsCount: supportedPairsCount,
			FeePercent:          adapter.FeePercent(),
		})
	}

	return venues, nil
}

// ListPairs returns the pairs listed by venueID.
// Returns VenueNotFoundError if no adapter is registered under venueID.
func (r *Router) ListPairs(ctx context.Context, venueID string) ([]domain.TradingPair, error) {
	ctx, span := tracer.Start(ctx, "Router.ListPairs")
	defer span.End()

	adapter, ok := r.adapterByID(venueID)
	if !ok {
		return nil, domain.VenueNotFoundError(venueID)
	}

	return r.getPairs(ctx, adapter)
}

// GetBestQuote returns the best quote for converting amount of inputToken into outputToken.
//
// If venueID is non-empty, only that venue is asked and its error is returned as is.
// Otherwise every venue is asked concurrently, venues that fail are skipped and the quote
// with the strictly greatest output amount wins. Ties go to the venue registered first.
// Returns NoQuotesAvailableError if no venue produced a quote.
//
// The platform fee and total cost of the returned quote are always computed here,
// overriding anything the adapter reported.
func (r *Router) GetBestQuote(ctx context.Context, inputToken, outputToken string, amount decimal.Decimal, venueID string) (quote domain.Quote, err error) {
	mode := quoteModeAggregate
	if venueID != "" {
		mode = quoteModeSingle
	}

	ctx, span := tracer.Start(ctx, "Router.GetBestQuote")
	span.SetAttributes(
		attribute.String("mode", mode),
		attribute.String("input_token", inputToken),
		attribute.String("output_token", outputToken),
		attribute.String("amount", amount.String()),
	)
	defer func() {
		outcome := outcomeOK
		if err != nil {
			span.RecordError(err)
			outcome = domain.AsDexError(err).Code
		} else {
			span.SetAttributes(attribute.String("venue_id", quote.VenueID))
		}
		domain.DexQuoteRequestsCounter.WithLabelValues(mode, outcome).Inc()
		span.End()
	}()

	if venueID != "" {
		return r.getVenueQuote(ctx, inputToken, outputToken, amount, venueID)
	}

	return r.getAggregateQuote(ctx, inputToken, outputToken, amount)
}

// getVenueQuote quotes a single venue, propagating its error.
func (r *Router) getVenueQuote(ctx context.Context, inputToken, outputToken string, amount decimal.Decimal, venueID string) (domain.Quote, error) {
	adapter, ok := r.adapterByID(venueID)
	if !ok {
		return domain.Quote{}, domain.VenueNotFoundError(venueID)
	}

	results := workerpool.RunAll(ctx, []workerpool.Job[domain.Quote]{r.quoteJob(adapter, inputToken, outputToken, amount)}, workerpool.JobTimeout(r.adapterTimeout))
	if err := results[0].Err; err != nil {
		return domain.Quote{}, r.venueError(adapter.VenueID(), err)
	}

	return r.applyPlatformFee(results[0].Result), nil
}

// getAggregateQuote quotes all venues concurrently and returns the best quote.
func (r *Router) getAggregateQuote(ctx context.Context, inputToken, outputToken string, amount decimal.Decimal) (domain.Quote, error) {
	jobs := make([]workerpool.Job[domain.Quote], 0, len(r.adapters))
	for _, adapter := range r.adapters {
		jobs = append(jobs, r.quoteJob(adapter, inputToken, outputToken, amount))
	}

	results := workerpool.RunAll(ctx, jobs, workerpool.JobTimeout(r.adapterTimeout))

	var (
		bestQuote domain.Quote
		found     bool
	)
	for i, result := range results {
		if result.Err != nil {
			venueErr := r.venueError(r.adapters[i].VenueID(), result.Err)
			r.logger.Debug("venue skipped during aggregate quote",
				zap.String("venue_id", r.adapters[i].VenueID()),
				zap.String("input_token", inputToken),
				zap.String("output_token", outputToken),
				zap.Error(venueErr),
			)
			continue
		}

		quote := r.applyPlatformFee(result.Result)
		if !found || quote.OutputAmount.GreaterThan(bestQuote.OutputAmount) {
			bestQuote = quote
			found = true
		}
	}

	if !found {
		return domain.Quote{}, domain.NoQuotesAvailableError(inputToken, outputToken)
	}

	domain.DexBestQuoteWinsCounter.WithLabelValues(bestQuote.VenueID).Inc()

	return bestQuote, nil
}

// quoteJob returns a job that asks adapter for a quote and observes its latency.
func (r *Router) quoteJob(adapter domain.VenueAdapter, inputToken, outputToken string, amount decimal.Decimal) workerpool.Job[domain.Quote] {
	return workerpool.Job[domain.Quote]{
		Task: func(ctx context.Context) (domain.Quote, error) {
			timer := prometheus.NewTimer(domain.DexVenueCallDurationHistogram.WithLabelValues(adapter.VenueID(), operationGetQuote))
			defer timer.ObserveDuration()

			return adapter.GetQuote(ctx, inputToken, outputToken, amount)
		},
	}
}

// pairsJob returns a job that asks adapter for its pairs and observes its latency.
func (r *Router) pairsJob(adapter domain.VenueAdapter) workerpool.Job[[]domain.TradingPair] {
	return workerpool.Job[[]domain.TradingPair]{
		Task: func(ctx context.Context) ([]domain.TradingPair, error) {
			timer := prometheus.NewTimer(domain.DexVenueCallDurationHistogram.WithLabelValues(adapter.VenueID(), operationGetPairs))
			defer timer.ObserveDuration()

			return adapter.GetPairs(ctx)
		},
	}
}

// getPairs fetches the pairs of adapter within the adapter timeout.
func (r *Router) getPairs(ctx context.Context, adapter domain.VenueAdapter) ([]domain.TradingPair, error) {
	results := workerpool.RunAll(ctx, []workerpool.Job[[]domain.TradingPair]{r.pairsJob(adapter)}, workerpool.JobTimeout(r.adapterTimeout))
	if err := results[0].Err; err != nil {
		return nil, r.venueError(adapter.VenueID(), err)
	}

	return results[0].Result, nil
}

// venueError converts an error raised by a venue into a domain error and counts it.
// Domain errors are kept as is; anything else is wrapped as VenueUnavailableError.
func (r *Router) venueError(venueID string, err error) error {
	var dexErr *domain.DexError
	if !errors.As(err, &dexErr) {
		r.logger.Warn("venue call failed", zap.String("venue_id", venueID), zap.Error(err))
		dexErr = domain.VenueUnavailableError(venueID, err)
	}

	domain.DexVenueQuoteErrorsCounter.WithLabelValues(venueID, dexErr.Code).Inc()

	return dexErr
}

// applyPlatformFee sets the platform fee and recomputes the total cost of quote:
//
//	platform_fee = input_amount * platform_fee_rate
//	total_cost   = input_amount + venue_fee + platform_fee
func (r *Router) applyPlatformFee(quote domain.Quote) domain.Quote {
	quote.PlatformFee = quote.InputAmount.Mul(r.platformFeeRate)
	quote.TotalCost = quote.InputAmount.Add(quote.VenueFee).Add(quote.PlatformFee)
	return quote
}

func (r *Router) adapterByID(venueID string) (domain.VenueAdapter, bool) {
	for _, adapter := range r.adapters {
		if adapter.VenueID() == venueID {
			return adapter, true
		}
	}
	return nil, false
}
