package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mangrove-one/MangroveMarkets/domain"
	"github.com/mangrove-one/MangroveMarkets/domain/mvc"
	"github.com/mangrove-one/MangroveMarkets/domain/workerpool"
	"github.com/mangrove-one/MangroveMarkets/log"
)

type dexUseCase struct {
	router          *Router
	quoteRepository mvc.QuoteRepository

	logger log.Logger
}

var _ mvc.DexUsecase = &dexUseCase{}

var (
	errAmountNotPositive = errors.New("amount must be positive")
	errQuoteIDRequired   = errors.New("quote_id is required")
)

const (
	swapNotImplementedMessage       = "Swap execution not yet available"
	swapStatusNotImplementedMessage = "Swap status not yet available"
)

// NewDexUsecase will create a new DEX use case object.
// Every quote returned by GetQuote is remembered in quoteRepository.
func NewDexUsecase(router *Router, quoteRepository mvc.QuoteRepository, logger log.Logger) mvc.DexUsecase {
	if logger == nil {
		logger = &log.NoOpLogger{}
	}

	return &dexUseCase{
		router:          router,
		quoteRepository: quoteRepository,
		logger:          logger,
	}
}

// SupportedVenues implements mvc.DexUsecase.
func (d *dexUseCase) SupportedVenues(ctx context.Context) ([]domain.Venue, error) {
	return d.router.ListVenues(ctx)
}

// SupportedPairs implements mvc.DexUsecase.
func (d *dexUseCase) SupportedPairs(ctx context.Context, venueID string) ([]domain.TradingPair, error) {
	return d.router.ListPairs(ctx, venueID)
}

// GetQuote implements mvc.DexUsecase.
func (d *dexUseCase) GetQuote(ctx context.Context, inputToken, outputToken string, amount decimal.Decimal, venueID string) (domain.Quote, error) {
	inputToken, outputToken = domain.NormalizeToken(inputToken), domain.NormalizeToken(outputToken)

	if err := domain.ValidateInputTokens(inputToken, outputToken); err != nil {
		return domain.Quote{}, domain.InvalidRequestError(err)
	}

	if !amount.IsPositive() {
		return domain.Quote{}, domain.InvalidRequestError(errAmountNotPositive)
	}

	quote, err := d.router.GetBestQuote(ctx, inputToken, outputToken, amount, venueID)
	if err != nil {
		return domain.Quote{}, err
	}

	d.quoteRepository.Store(quote)

	d.logger.Debug("quote issued",
		zap.String("quote_id", quote.QuoteID),
		zap.String("venue_id", quote.VenueID),
		zap.Stringer("output_amount", quote.OutputAmount),
	)

	return quote, nil
}

// GetIssuedQuote implements mvc.DexUsecase.
func (d *dexUseCase) GetIssuedQuote(ctx context.Context, quoteID string) (domain.Quote, error) {
	if quoteID == "" {
		return domain.Quote{}, domain.InvalidRequestError(errQuoteIDRequired)
	}

	quote, ok := d.quoteRepository.Get(quoteID)
	if !ok {
		return domain.Quote{}, domain.QuoteNotFoundError(quoteID)
	}

	return quote, nil
}

// Swap implements mvc.DexUsecase.
// Swap execution is not available yet; every call fails with NotImplementedError.
func (d *dexUseCase) Swap(ctx context.Context, quoteID, credential string) (string, error) {
	return "", domain.NotImplementedError(swapNotImplementedMessage)
}

// SwapStatus implements mvc.DexUsecase.
// Every call fails with NotImplementedError.
func (d *dexUseCase) SwapStatus(ctx context.Context, swapID string) (domain.SwapStatus, error) {
	return "", domain.NotImplementedError(swapStatusNotImplementedMessage)
}

// VenueHealth implements mvc.DexUsecase.
// Adapters are checked concurrently, each bounded by the adapter timeout. A check that
// panics or does not answer in time reports the venue as unhealthy.
// Updates the venue health gauge as a side effect.
func (d *dexUseCase) VenueHealth(ctx context.Context) map[string]bool {
	adapters := d.router.Adapters()

	jobs := make([]workerpool.Job[bool], 0, len(adapters))
	for _, adapter := range adapters {
		jobs = append(jobs, workerpool.Job[bool]{
			Task: func(ctx context.Context) (bool, error) {
				return adapter.HealthCheck(ctx), nil
			},
		})
	}

	results := workerpool.RunAll(ctx, jobs, workerpool.JobTimeout(d.router.adapterTimeout))

	health := make(map[string]bool, len(adapters))
	for i, adapter := range adapters {
		healthy := results[i].Err == nil && results[i].Result
		if err := results[i].Err; err != nil {
			d.logger.Warn("venue health check failed", zap.String("venue_id", adapter.VenueID()), zap.Error(err))
		}

		health[adapter.VenueID()] = healthy

		gaugeValue := 0.0
		if healthy {
			gaugeValue = 1
		}
		domain.DexVenueHealthyGauge.WithLabelValues(adapter.VenueID()).Set(gaugeValue)
	}

	return health
}
