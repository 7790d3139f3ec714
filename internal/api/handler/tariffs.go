package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tariff-sync/infrastructure/repository"
	"github.com/vfg2006/tariff-sync/internal/domain"
	"github.com/vfg2006/tariff-sync/pkg/apiErrors"
	"github.com/vfg2006/tariff-sync/pkg/log"
	"github.com/vfg2006/tariff-sync/pkg/utils"
)

// ListTariffs retorna as tarifas gravadas para o dia informado em ?date=YYYY-MM-DD.
// Sem data, usa o dia corrente no fuso da sincronização.
func ListTariffs(repo repository.TariffRepository, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ListTariffs")

		rawDate := r.URL.Query().Get("date")
		date, err := utils.ParseDate(rawDate, loc)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato YYYY-MM-DD", map[string]string{"date": rawDate})
			return
		}

		tariffs, err := repo.ListByDate(r.Context(), date)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao listar tarifas")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar tarifas", nil)
			return
		}

		if tariffs == nil {
			tariffs = []*domain.TariffRecord{}
		}

		writeJSON(w, http.StatusOK, domain.TariffListResponse{
			Date:    date.Format(time.DateOnly),
			Total:   len(tariffs),
			Tariffs: tariffs,
		})
	}
}
