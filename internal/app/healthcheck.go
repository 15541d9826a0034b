package app

import "net/http"

func (app *application) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthcheckResponse{
		Status: "available",
		SystemInfo: SystemInfo{
			Version:     version,
			Environment: app.config.env,
		},
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
