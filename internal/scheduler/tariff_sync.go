package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tariff-sync/internal/config"
	"github.com/vfg2006/tariff-sync/internal/domain"
	"github.com/vfg2006/tariff-sync/internal/metrics"
	"github.com/vfg2006/tariff-sync/pkg/log"
)

// ErrSyncInProgress indica que já existe uma sincronização em execução
var ErrSyncInProgress = errors.New("sincronização de tarifas já em andamento")

// TariffSyncer é o orquestrador executado a cada disparo
type TariffSyncer interface {
	Run(ctx context.Context) (*domain.SyncRun, error)
	State() domain.SyncState
	LastRun() *domain.SyncRun
}

// TariffSyncConfig representa a configuração do agendador de tarifas
type TariffSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
	RunOnStart   bool
	RunTimeout   time.Duration
	Location     *time.Location
}

// TariffSyncService gerencia o agendamento e a execução da sincronização de tarifas
type TariffSyncService struct {
	scheduler           *gocron.Scheduler
	job                 *gocron.Job
	config              TariffSyncConfig
	syncer              TariffSyncer
	baseCtx             context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	inFlight            sync.WaitGroup
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncSource      string
	lastSyncError       string
}

// NewTariffSyncService cria uma nova instância do serviço de sincronização de tarifas
func NewTariffSyncService(syncer TariffSyncer, appConfig *config.Config) *TariffSyncService {
	syncConfig := TariffSyncConfig{
		CronSchedule: appConfig.TariffSync.CronSchedule,
		SyncEnabled:  appConfig.TariffSync.Enabled,
		RunOnStart:   appConfig.TariffSync.RunOnStart,
		RunTimeout:   appConfig.TariffSync.RunTimeout,
		Location:     appConfig.TariffSync.Location,
	}
	if syncConfig.Location == nil {
		syncConfig.Location = time.UTC
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
		"run_on_start":  syncConfig.RunOnStart,
		"run_timeout":   syncConfig.RunTimeout.String(),
		"timezone":      syncConfig.Location.String(),
	}).Info("Configuração do agendador de tarifas carregada")

	return &TariffSyncService{
		scheduler: gocron.NewScheduler(syncConfig.Location),
		config:    syncConfig,
		syncer:    syncer,
		baseCtx:   context.Background(),
	}
}

// Start inicia o agendador
func (s *TariffSyncService) Start(ctx context.Context) error {
	s.baseCtx = ctx

	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de tarifas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de tarifas")

	job, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncTariffs(ctx, "cron")
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de tarifas: %w", err)
	}
	s.job = job

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	if s.config.RunOnStart {
		logrus.Info("Executando sincronização de tarifas na inicialização")
		s.trigger("startup")
	}

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de tarifas")
		s.scheduler.Stop()
	}()

	return nil
}

// Stop para o agendador e aguarda a execução em andamento terminar
func (s *TariffSyncService) Stop() {
	if s.scheduler.IsRunning() {
		s.scheduler.Stop()
	}
	s.inFlight.Wait()
}

// TriggerManualSync dispara uma sincronização em segundo plano. Retorna false quando
// já existe uma execução em andamento.
func (s *TariffSyncService) TriggerManualSync() bool {
	return s.trigger("manual")
}

// RunNow executa uma sincronização de forma síncrona, respeitando a mesma proteção
// contra execuções simultâneas dos disparos agendados
func (s *TariffSyncService) RunNow(ctx context.Context) (*domain.SyncRun, error) {
	if !s.acquire("manual") {
		return nil, ErrSyncInProgress
	}
	defer s.release()

	return s.execute(ctx, "manual")
}

// GetStatus retorna o status atual do agendador
func (s *TariffSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_timezone":          s.config.Location.String(),
		"sync_run_timeout":       s.config.RunTimeout.String(),
		"sync_running":           s.syncRunning,
		"retention_policy":       "dados mantidos permanentemente",
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_source":       s.lastSyncSource,
		"last_sync_error":        s.lastSyncError,
	}
	s.syncMutex.Unlock()

	status["state"] = s.syncer.State()
	if lastRun := s.syncer.LastRun(); lastRun != nil {
		status["last_run"] = lastRun
	}
	if s.job != nil {
		status["next_run_at"] = s.job.NextRun()
	}

	return status
}

func (s *TariffSyncService) trigger(source string) bool {
	if !s.acquire(source) {
		return false
	}

	logrus.WithField("source", source).Info("Iniciando sincronização de tarifas em segundo plano")

	go func() {
		defer s.release()
		_, _ = s.execute(s.baseCtx, source)
	}()

	return true
}

// syncTariffs é o callback do cron
func (s *TariffSyncService) syncTariffs(ctx context.Context, source string) {
	if !s.acquire(source) {
		return
	}
	defer s.release()

	_, _ = s.execute(ctx, source)
}

func (s *TariffSyncService) acquire(source string) bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		metrics.SkippedTriggersTotal.WithLabelValues(source).Inc()
		logrus.WithField("source", source).Info("Sincronização de tarifas já em andamento, ignorando")
		return false
	}

	s.syncRunning = true
	s.inFlight.Add(1)
	s.lastSyncStartedAt = time.Now()
	s.lastSyncSource = source
	return true
}

func (s *TariffSyncService) release() {
	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()
	s.inFlight.Done()
}

func (s *TariffSyncService) execute(ctx context.Context, source string) (*domain.SyncRun, error) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	runCtx, _ = log.WithCorrelationID(runCtx)
	logger := log.ForContext(runCtx).WithField("source", source)

	run, err := s.syncer.Run(runCtx)

	s.syncMutex.Lock()
	if err != nil {
		s.lastSyncError = err.Error()
	} else {
		s.lastSyncError = ""
	}
	s.syncMutex.Unlock()

	if err != nil {
		// Sem nova tentativa imediata: o próximo disparo do cron tenta novamente
		logger.WithError(err).Error("Erro na sincronização de tarifas, aguardando próximo disparo")
		return run, err
	}

	logger.WithFields(log.Fields{
		"fetched":   run.Fetched,
		"persisted": run.Persisted,
	}).Info("Sincronização de tarifas finalizada")

	return run, nil
}
