package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/meta-ads-dashboard-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeCacheSweep = "cache-sweep"
)

// ManualJob é um job agendado que também pode ser disparado pela API
type ManualJob interface {
	TriggerManualSweep() (string, error)
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	CacheSweepService ManualJob
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeCacheSweep:
			if services.CacheSweepService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de limpeza de cache não disponível", nil)
				return
			}

			runID, err := services.CacheSweepService.TriggerManualSweep()
			if err != nil {
				logrus.WithError(err).Error("cron: falha ao disparar limpeza de cache")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Falha ao iniciar a cron job", nil)
				return
			}

			writeJSON(w, http.StatusAccepted, map[string]any{
				"message": "Cron job iniciada com sucesso",
				"type":    cronType,
				"run_id":  runID,
			})

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: cache-sweep", nil)
		}
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.CacheSweepService != nil {
			status[CronJobTypeCacheSweep] = services.CacheSweepService.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
