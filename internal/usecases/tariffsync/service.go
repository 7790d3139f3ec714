// Package tariffsync orquestra o pipeline buscar → gravar → publicar das tarifas
package tariffsync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vfg2006/tariff-sync/infrastructure/integrator/wildberries"
	"github.com/vfg2006/tariff-sync/infrastructure/repository"
	"github.com/vfg2006/tariff-sync/internal/domain"
	"github.com/vfg2006/tariff-sync/internal/metrics"
	"github.com/vfg2006/tariff-sync/internal/usecases/publishing"
	"github.com/vfg2006/tariff-sync/pkg/log"
	"github.com/vfg2006/tariff-sync/pkg/utils"
)

// ErrRunInProgress é retornado quando Run é chamado com uma execução ativa
var ErrRunInProgress = errors.New("sincronização de tarifas já em andamento")

// Timeouts são os prazos de cada etapa, aplicados dentro do prazo da execução
type Timeouts struct {
	Fetch   time.Duration
	Persist time.Duration
	Publish time.Duration
}

type Service struct {
	provider wildberries.WildberriesIntegrator
	store    repository.TariffRepository
	sink     publishing.Sink
	timeouts Timeouts

	mu      sync.RWMutex
	state   domain.SyncState
	lastRun *domain.SyncRun
	now     func() time.Time
}

func NewService(
	provider wildberries.WildberriesIntegrator,
	store repository.TariffRepository,
	sink publishing.Sink,
	timeouts Timeouts,
) *Service {
	return &Service{
		provider: provider,
		store:    store,
		sink:     sink,
		timeouts: timeouts,
		state:    domain.SyncStateIdle,
		now:      time.Now,
	}
}

// Run executa uma sincronização completa. Uma falha em qualquer etapa leva ao estado
// ERRORED, as etapas seguintes não são executadas e o erro é devolvido como *domain.RunError.
func (s *Service) Run(ctx context.Context) (*domain.SyncRun, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}

	runID, err := utils.GenerateID()
	if err != nil {
		s.setState(domain.SyncStateErrored)
		return nil, fmt.Errorf("erro ao gerar id da execução: %w", err)
	}

	ctx = log.WithRunID(ctx, runID)
	logger := log.ForContext(ctx)

	run := &domain.SyncRun{
		ID:        runID,
		StartedAt: s.now(),
		State:     domain.SyncStateFetching,
	}

	logger.Info("Iniciando sincronização de tarifas")

	records, err := runStage(ctx, domain.StageFetch, s.timeouts.Fetch, s.provider.FetchTariffs)
	if err != nil {
		return s.fail(ctx, run, domain.StageFetch, err)
	}
	run.Fetched = len(records)
	metrics.TariffsFetched.Set(float64(len(records)))

	s.setState(domain.SyncStatePersisting)
	persisted, err := runStage(ctx, domain.StagePersist, s.timeouts.Persist, func(stageCtx context.Context) (int, error) {
		return s.store.UpsertAll(stageCtx, records)
	})
	if err != nil {
		return s.fail(ctx, run, domain.StagePersist, err)
	}
	run.Persisted = persisted
	metrics.TariffsPersisted.Set(float64(persisted))

	s.setState(domain.SyncStatePublishing)
	_, err = runStage(ctx, domain.StagePublish, s.timeouts.Publish, func(stageCtx context.Context) (struct{}, error) {
		return struct{}{}, s.sink.Publish(stageCtx, records)
	})
	if err != nil {
		return s.fail(ctx, run, domain.StagePublish, err)
	}
	run.Published = true

	s.finish(run, domain.SyncStateIdle)
	metrics.ObserveRun(run.StartedAt, nil)

	logger.WithFields(log.Fields{
		"fetched":     run.Fetched,
		"persisted":   run.Persisted,
		"duration_ms": s.now().Sub(run.StartedAt).Milliseconds(),
	}).Info("Sincronização de tarifas concluída")

	return run, nil
}

// State retorna o estado atual do orquestrador
func (s *Service) State() domain.SyncState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// LastRun retorna uma cópia do resumo da última execução concluída
func (s *Service) LastRun() *domain.SyncRun {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastRun == nil {
		return nil
	}
	copied := *s.lastRun
	return &copied
}

func (s *Service) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case domain.SyncStateIdle, domain.SyncStateErrored:
		s.state = domain.SyncStateFetching
		return nil
	default:
		return ErrRunInProgress
	}
}

func (s *Service) setState(state domain.SyncState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Service) finish(run *domain.SyncRun, state domain.SyncState) {
	completedAt := s.now()
	run.CompletedAt = &completedAt
	run.Duration = completedAt.Sub(run.StartedAt).String()
	run.State = state

	s.mu.Lock()
	s.state = state
	copied := *run
	s.lastRun = &copied
	s.mu.Unlock()
}

func (s *Service) fail(ctx context.Context, run *domain.SyncRun, stage domain.Stage, err error) (*domain.SyncRun, error) {
	run.FailedStage = stage
	run.Error = err.Error()
	s.finish(run, domain.SyncStateErrored)
	metrics.ObserveRun(run.StartedAt, err)

	log.ForContext(ctx).
		WithError(err).
		WithFields(log.Fields{
			"stage":     string(stage),
			"fetched":   run.Fetched,
			"persisted": run.Persisted,
		}).
		Error("Sincronização de tarifas falhou")

	return run, &domain.RunError{RunID: run.ID, Stage: stage, Err: err}
}

type stageResult[T any] struct {
	value     T
	err       error
	abandoned bool
}

// awaitStage espera o resultado da etapa ou o fim do prazo. Quando os dois estão
// prontos ao mesmo tempo, o resultado concluído prevalece.
func awaitStage[T any](stageCtx context.Context, done <-chan stageResult[T]) stageResult[T] {
	select {
	case result := <-done:
		return result
	case <-stageCtx.Done():
	}

	select {
	case result := <-done:
		return result
	default:
		return stageResult[T]{err: stageCtx.Err(), abandoned: true}
	}
}

// runStage executa fn com o prazo da etapa. Se o prazo vencer antes de fn retornar,
// a etapa falha mesmo que fn ignore o contexto. Nesse caso fn é abandonada, mas a
// goroutine só termina quando fn retornar: uma implementação que ignora o contexto
// pode continuar trabalhando em paralelo à execução seguinte.
func runStage[T any](ctx context.Context, stage domain.Stage, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	stageCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	startedAt := time.Now()
	log.ForContext(ctx).WithField("stage", string(stage)).Debug("Etapa iniciada")

	done := make(chan stageResult[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- stageResult[T]{err: fmt.Errorf("panic na etapa %s: %v", stage, r)}
			}
		}()
		value, err := fn(stageCtx)
		done <- stageResult[T]{value: value, err: err}
	}()

	result := awaitStage(stageCtx, done)
	if result.abandoned {
		log.ForContext(ctx).WithField("stage", string(stage)).Warn("Prazo da etapa excedido, etapa abandonada")
	}

	if result.err != nil {
		var zero T
		result.value = zero
		result.err = classify(stage, result.err)
	}

	metrics.ObserveStage(string(stage), startedAt, kindLabel(result.err))
	return result.value, result.err
}

// classify garante que o erro tenha um tipo do pipeline. Prazos vencidos e erros sem
// tipo recebem o tipo da etapa.
func classify(stage domain.Stage, err error) error {
	kind := domain.ErrorKind(err)
	stageKind := kindForStage(stage)

	if kind == nil || (kind != stageKind && isContextError(err)) {
		details := ""
		if errors.Is(err, context.DeadlineExceeded) {
			details = "prazo da etapa excedido"
		}
		return newStageError(stage, details, err)
	}

	return err
}

func kindForStage(stage domain.Stage) error {
	switch stage {
	case domain.StageFetch:
		return domain.ErrTransport
	case domain.StagePersist:
		return domain.ErrPersistence
	default:
		return domain.ErrPublish
	}
}

func newStageError(stage domain.Stage, details string, err error) error {
	op := "tariffsync." + string(stage)
	switch stage {
	case domain.StageFetch:
		return domain.NewTransportError(op, details, err)
	case domain.StagePersist:
		return domain.NewPersistenceError(op, details, err)
	default:
		return domain.NewPublishError(op, details, err)
	}
}

func isContextError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

func kindLabel(err error) string {
	if err == nil {
		return ""
	}
	kind := domain.ErrorKind(err)
	if kind == nil {
		return "unknown"
	}
	return strings.ReplaceAll(kind.Error(), " ", "_")
}
