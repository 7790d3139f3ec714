package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tariff-sync/internal/domain"
	"github.com/vfg2006/tariff-sync/internal/scheduler"
	"github.com/vfg2006/tariff-sync/pkg/apiErrors"
	"github.com/vfg2006/tariff-sync/pkg/log"
)

// TariffSyncTrigger é o agendador visto pela API
type TariffSyncTrigger interface {
	TriggerManualSync() bool
	RunNow(ctx context.Context) (*domain.SyncRun, error)
	GetStatus() map[string]any
}

// RunTariffSync dispara a sincronização de tarifas manualmente.
// Com ?wait=true a requisição aguarda o fim da execução.
func RunTariffSync(service TariffSyncTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunTariffSync")

		wait := false
		if raw := r.URL.Query().Get("wait"); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro wait inválido", map[string]string{"wait": raw})
				return
			}
			wait = parsed
		}

		if !wait {
			if !service.TriggerManualSync() {
				apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, scheduler.ErrSyncInProgress.Error(), nil)
				return
			}

			writeJSON(w, http.StatusAccepted, map[string]any{
				"message": "Sincronização de tarifas iniciada",
			})
			return
		}

		run, err := service.RunNow(r.Context())
		if err != nil {
			if errors.Is(err, scheduler.ErrSyncInProgress) {
				apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, err.Error(), nil)
				return
			}

			log.ForContext(r.Context()).WithError(err).Error("Sincronização manual falhou")

			var details any
			if run != nil {
				details = run
			}
			apiErrors.WriteError(w, apiErrors.ErrSyncFailed, err.Error(), details)
			return
		}

		writeJSON(w, http.StatusOK, run)
	}
}

// GetCronStatus retorna o status do agendador e da última execução
func GetCronStatus(service TariffSyncTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		writeJSON(w, http.StatusOK, map[string]any{
			"tariffs": service.GetStatus(),
		})
	}
}
