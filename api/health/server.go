package health

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (hm *HealthRoutesManager) GetServerHealth(w http.ResponseWriter, r *http.Request) {
	status := hm.services.HealthService.GetServerHealthStatus()

	gecho.Success(w,
		gecho.WithMessage("Service healthy"),
		gecho.WithData(status),
		gecho.Send(),
	)
}

func (hm *HealthRoutesManager) GetDependencyHealth(w http.ResponseWriter, r *http.Request) {
	status, err := hm.services.HealthService.GetDependencyHealthStatus()
	if err != nil {
		gecho.ServiceUnavailable(w,
			gecho.WithMessage("One or more dependencies are unhealthy"),
			gecho.WithData(status),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Dependencies healthy"),
		gecho.WithData(status),
		gecho.Send(),
	)
}
