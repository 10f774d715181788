package scheduler

import (
	"context"
	"time"

	"rh-backoffice/internal/rental"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultMonthlyBatchSpec runs on the first day of each month at 03:00
// UTC, after the previous month has fully closed.
const DefaultMonthlyBatchSpec = "0 3 1 * *"

// systemActorID marks rows created by the scheduler instead of a user.
const systemActorID = "00000000-0000-0000-0000-000000000001"

type Scheduler struct {
	cron         *cron.Cron
	batchService rental.BatchService
	contractRepo rental.Repository
	logger       *zap.Logger
}

func NewScheduler(
	batchService rental.BatchService,
	contractRepo rental.Repository,
	logger ...*zap.Logger,
) *Scheduler {
	l := zap.L().Named("scheduler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("scheduler")
	}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
		),
		batchService: batchService,
		contractRepo: contractRepo,
		logger:       l,
	}
}

// Register wires the monthly batch job. An empty spec falls back to the
// default first-of-month schedule.
func (s *Scheduler) Register(spec string) error {
	if spec == "" {
		spec = DefaultMonthlyBatchSpec
	}
	_, err := s.cron.AddFunc(spec, s.RunMonthlyBatch)
	if err != nil {
		s.logger.Error("failed to register monthly batch job", zap.Error(err))
		return err
	}
	s.logger.Info("monthly batch job registered", zap.String("spec", spec))
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// RunMonthlyBatch processes the previous calendar month for every
// company holding active contracts.
func (s *Scheduler) RunMonthlyBatch() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	now := time.Now().UTC()
	previous := rental.Period{Year: now.Year(), Month: int(now.Month())}
	if previous.Month == 1 {
		previous = rental.Period{Year: previous.Year - 1, Month: 12}
	} else {
		previous.Month--
	}

	companyIDs, err := s.contractRepo.CompaniesWithActiveContracts(ctx)
	if err != nil {
		s.logger.Error("monthly batch company listing failed", zap.Error(err))
		return
	}

	s.logger.Info("monthly batch run starting",
		zap.String("period", previous.String()),
		zap.Int("companies", len(companyIDs)),
	)

	for _, companyID := range companyIDs {
		result, err := s.batchService.ProcessPeriod(ctx, companyID, systemActorID, previous.String(), rental.BatchOptions{
			CreatePayments:        true,
			CreateApprovals:       true,
			CreateAccountsPayable: true,
			AccountsPayableMode:   rental.PayableModePerEmployee,
		})
		if err != nil {
			// One failing tenant must not block the rest of the run.
			s.logger.Error("monthly batch failed for company",
				zap.String("company_id", companyID),
				zap.String("period", previous.String()),
				zap.Error(err),
			)
			continue
		}
		s.logger.Info("monthly batch processed company",
			zap.String("company_id", companyID),
			zap.String("period", previous.String()),
			zap.Int("created_payments", result.CreatedPayments),
			zap.Int("skipped_payments", result.SkippedPayments),
		)
	}
}
