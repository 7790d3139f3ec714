package tariffsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	wbmocks "github.com/vfg2006/tariff-sync/infrastructure/integrator/wildberries/mocks"
	"github.com/vfg2006/tariff-sync/infrastructure/repository/memory"
	repomocks "github.com/vfg2006/tariff-sync/infrastructure/repository/mocks"
	"github.com/vfg2006/tariff-sync/internal/domain"
	"github.com/vfg2006/tariff-sync/internal/usecases/publishing"
	publishmocks "github.com/vfg2006/tariff-sync/internal/usecases/publishing/mocks"
	"go.uber.org/mock/gomock"
)

var defaultTimeouts = Timeouts{Fetch: time.Second, Persist: time.Second, Publish: time.Second}

type testDeps struct {
	provider *wbmocks.MockWildberriesIntegrator
	store    *repomocks.MockTariffRepository
	sink     *publishmocks.MockSink
}

func newTestService(t *testing.T, timeouts Timeouts) (*Service, testDeps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	deps := testDeps{
		provider: wbmocks.NewMockWildberriesIntegrator(ctrl),
		store:    repomocks.NewMockTariffRepository(ctrl),
		sink:     publishmocks.NewMockSink(ctrl),
	}

	return NewService(deps.provider, deps.store, deps.sink, timeouts), deps
}

func sampleRecords() []*domain.TariffRecord {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	return []*domain.TariffRecord{
		{Date: day, BoxSize: 30, Coefficient: 100.5, WarehouseName: "Коледино"},
		{Date: day, BoxSize: 30, Coefficient: 87.3, WarehouseName: "Коледино", IsMarketplace: true},
	}
}

func TestRun_Success(t *testing.T) {
	service, deps := newTestService(t, defaultTimeouts)
	records := sampleRecords()

	gomock.InOrder(
		deps.provider.EXPECT().FetchTariffs(gomock.Any()).DoAndReturn(func(context.Context) ([]*domain.TariffRecord, error) {
			assert.Equal(t, domain.SyncStateFetching, service.State())
			return records, nil
		}),
		deps.store.EXPECT().UpsertAll(gomock.Any(), records).DoAndReturn(func(context.Context, []*domain.TariffRecord) (int, error) {
			assert.Equal(t, domain.SyncStatePersisting, service.State())
			return len(records), nil
		}),
		deps.sink.EXPECT().Publish(gomock.Any(), records).DoAndReturn(func(context.Context, []*domain.TariffRecord) error {
			assert.Equal(t, domain.SyncStatePublishing, service.State())
			return nil
		}),
	)

	run, err := service.Run(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 2, run.Fetched)
	assert.Equal(t, 2, run.Persisted)
	assert.True(t, run.Published)
	assert.Equal(t, domain.SyncStateIdle, run.State)
	assert.NotNil(t, run.CompletedAt)
	assert.Equal(t, domain.SyncStateIdle, service.State())
	assert.Equal(t, run.ID, service.LastRun().ID)
}

func TestRun_StageFailures(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(d testDeps)
		wantStage domain.Stage
		wantKind  error
	}{
		{
			name: "falha na busca não grava nem publica",
			setup: func(d testDeps) {
				d.provider.EXPECT().FetchTariffs(gomock.Any()).
					Return(nil, domain.NewSchemaError("wildberries.normalize", "warehouseList ausente", nil))
			},
			wantStage: domain.StageFetch,
			wantKind:  domain.ErrSchema,
		},
		{
			name: "falha ao gravar não publica",
			setup: func(d testDeps) {
				d.provider.EXPECT().FetchTariffs(gomock.Any()).Return(sampleRecords(), nil)
				d.store.EXPECT().UpsertAll(gomock.Any(), gomock.Any()).
					Return(0, domain.NewPersistenceError("tariffs.upsert_all", "", errors.New("deadlock")))
			},
			wantStage: domain.StagePersist,
			wantKind:  domain.ErrPersistence,
		},
		{
			name: "erro sem tipo recebe o tipo da etapa",
			setup: func(d testDeps) {
				d.provider.EXPECT().FetchTariffs(gomock.Any()).Return(sampleRecords(), nil)
				d.store.EXPECT().UpsertAll(gomock.Any(), gomock.Any()).Return(0, errors.New("conexão perdida"))
			},
			wantStage: domain.StagePersist,
			wantKind:  domain.ErrPersistence,
		},
		{
			name: "falha ao publicar",
			setup: func(d testDeps) {
				d.provider.EXPECT().FetchTariffs(gomock.Any()).Return(sampleRecords(), nil)
				d.store.EXPECT().UpsertAll(gomock.Any(), gomock.Any()).Return(2, nil)
				d.sink.EXPECT().Publish(gomock.Any(), gomock.Any()).
					Return(domain.NewPublishError("googlesheets.publish", "planilha a", errors.New("403")))
			},
			wantStage: domain.StagePublish,
			wantKind:  domain.ErrPublish,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, deps := newTestService(t, defaultTimeouts)
			tt.setup(deps)

			run, err := service.Run(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantKind)

			var runErr *domain.RunError
			require.True(t, errors.As(err, &runErr))
			assert.Equal(t, tt.wantStage, runErr.Stage)
			assert.Equal(t, run.ID, runErr.RunID)

			assert.Equal(t, domain.SyncStateErrored, service.State())
			assert.Equal(t, tt.wantStage, run.FailedStage)
			assert.False(t, run.Published)
			assert.NotEmpty(t, run.Error)
		})
	}
}

func TestRun_StageTimeouts(t *testing.T) {
	short := Timeouts{Fetch: 20 * time.Millisecond, Persist: 20 * time.Millisecond, Publish: 20 * time.Millisecond}

	blockUntilDone := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}

	tests := []struct {
		name      string
		setup     func(d testDeps)
		wantStage domain.Stage
		wantKind  error
	}{
		{
			name: "busca respeitando o contexto",
			setup: func(d testDeps) {
				d.provider.EXPECT().FetchTariffs(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]*domain.TariffRecord, error) {
					return nil, blockUntilDone(ctx)
				})
			},
			wantStage: domain.StageFetch,
			wantKind:  domain.ErrTransport,
		},
		{
			name: "busca ignorando o contexto",
			setup: func(d testDeps) {
				d.provider.EXPECT().FetchTariffs(gomock.Any()).DoAndReturn(func(context.Context) ([]*domain.TariffRecord, error) {
					time.Sleep(200 * time.Millisecond)
					return sampleRecords(), nil
				})
			},
			wantStage: domain.StageFetch,
			wantKind:  domain.ErrTransport,
		},
		{
			name: "gravação",
			setup: func(d testDeps) {
				d.provider.EXPECT().FetchTariffs(gomock.Any()).Return(sampleRecords(), nil)
				d.store.EXPECT().UpsertAll(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ []*domain.TariffRecord) (int, error) {
					return 0, blockUntilDone(ctx)
				})
			},
			wantStage: domain.StagePersist,
			wantKind:  domain.ErrPersistence,
		},
		{
			name: "publicação",
			setup: func(d testDeps) {
				d.provider.EXPECT().FetchTariffs(gomock.Any()).Return(sampleRecords(), nil)
				d.store.EXPECT().UpsertAll(gomock.Any(), gomock.Any()).Return(2, nil)
				d.sink.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ []*domain.TariffRecord) error {
					return blockUntilDone(ctx)
				})
			},
			wantStage: domain.StagePublish,
			wantKind:  domain.ErrPublish,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, deps := newTestService(t, short)
			tt.setup(deps)

			_, err := service.Run(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantKind)
			assert.ErrorIs(t, err, context.DeadlineExceeded)

			var runErr *domain.RunError
			require.True(t, errors.As(err, &runErr))
			assert.Equal(t, tt.wantStage, runErr.Stage)
		})
	}
}

func TestRun_RecoversFromErrored(t *testing.T) {
	service, deps := newTestService(t, defaultTimeouts)

	deps.provider.EXPECT().FetchTariffs(gomock.Any()).Return(nil, domain.NewTransportError("wildberries", "", errors.New("503")))
	_, err := service.Run(context.Background())
	require.Error(t, err)
	require.Equal(t, domain.SyncStateErrored, service.State())

	deps.provider.EXPECT().FetchTariffs(gomock.Any()).Return(sampleRecords(), nil)
	deps.store.EXPECT().UpsertAll(gomock.Any(), gomock.Any()).Return(2, nil)
	deps.sink.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	_, err = service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStateIdle, service.State())
}

func TestRun_RejectsConcurrentRun(t *testing.T) {
	service, deps := newTestService(t, defaultTimeouts)

	started := make(chan struct{})
	release := make(chan struct{})

	deps.provider.EXPECT().FetchTariffs(gomock.Any()).DoAndReturn(func(context.Context) ([]*domain.TariffRecord, error) {
		close(started)
		<-release
		return nil, nil
	})
	deps.store.EXPECT().UpsertAll(gomock.Any(), gomock.Any()).Return(0, nil)
	deps.sink.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	result := make(chan error, 1)
	go func() {
		_, err := service.Run(context.Background())
		result <- err
	}()

	<-started
	_, err := service.Run(context.Background())
	assert.ErrorIs(t, err, ErrRunInProgress)

	close(release)
	assert.NoError(t, <-result)
}

type staticProvider struct {
	records []*domain.TariffRecord
}

func (p staticProvider) FetchTariffs(context.Context) ([]*domain.TariffRecord, error) {
	return p.records, nil
}

type recordingSink struct {
	snapshots [][]*domain.TariffRecord
}

func (s *recordingSink) Publish(_ context.Context, records []*domain.TariffRecord) error {
	s.snapshots = append(s.snapshots, records)
	return nil
}

func TestRun_IdempotentPipeline(t *testing.T) {
	store := memory.NewTariffRepository()
	sink := &recordingSink{}
	service := NewService(staticProvider{records: sampleRecords()}, store, publishing.Chain(sink), defaultTimeouts)

	for i := 0; i < 3; i++ {
		run, err := service.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, run.Persisted)
	}

	assert.Equal(t, 2, store.Count())
	require.Len(t, sink.snapshots, 3)
	assert.Len(t, sink.snapshots[2], 2)
}

func TestClassify(t *testing.T) {
	typed := domain.NewSchemaError("op", "", nil)
	assert.Same(t, typed, classify(domain.StageFetch, typed))

	wrapped := classify(domain.StagePublish, context.DeadlineExceeded)
	assert.ErrorIs(t, wrapped, domain.ErrPublish)
	assert.Contains(t, wrapped.Error(), "prazo da etapa excedido")

	// Um erro de transporte causado pelo prazo da gravação vira erro de persistência
	mixed := domain.NewTransportError("op", "", context.DeadlineExceeded)
	assert.ErrorIs(t, classify(domain.StagePersist, mixed), domain.ErrPersistence)

	assert.Equal(t, "parse_error", kindLabel(domain.NewParseError("op", "", nil)))
	assert.Equal(t, "unknown", kindLabel(errors.New("x")))
	assert.Empty(t, kindLabel(nil))
}

func TestAwaitStage(t *testing.T) {
	t.Run("resultado pronto no mesmo instante do prazo prevalece", func(t *testing.T) {
		// Os dois canais prontos: sem a segunda verificação o select escolheria ao acaso.
		for i := 0; i < 200; i++ {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			done := make(chan stageResult[int], 1)
			done <- stageResult[int]{value: 7}

			result := awaitStage(ctx, done)
			require.NoError(t, result.err)
			assert.Equal(t, 7, result.value)
			assert.False(t, result.abandoned)
		}
	})

	t.Run("prazo vencido sem resultado abandona a etapa", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
		defer cancel()

		result := awaitStage(ctx, make(chan stageResult[int], 1))
		assert.ErrorIs(t, result.err, context.DeadlineExceeded)
		assert.True(t, result.abandoned)
	})
}
