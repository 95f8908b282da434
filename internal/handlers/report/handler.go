package report

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/report/model/dto"
	"hotel/internal/domains/report/service"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/occupancy", handler.Occupancy)
	})
}

// Occupancy summarizes rooms, bookings and revenue for a period.
// @Summary Occupancy report @Admin
// @Description Without from and to the current month is reported. Revenue counts checked out bookings only.
// @Tags Report
// @Produce json
// @Param from query string false "Period start (YYYY-MM-DD)"
// @Param to query string false "Period end, exclusive (YYYY-MM-DD)"
// @Success 200 {object} dto.OccupancyReportResponse "Occupancy report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/occupancy [get]
// @Security BearerAuth
func (handler *Handler) Occupancy(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Occupancy")
	defer scope.End()

	query := dto.PeriodQuery{}
	query.FromRequest(r)

	if err := validator.ValidateStruct(&query); err != nil {
		response.Fail(w, scope, err, "invalid report period")

		return
	}

	period, err := query.Period()
	if err != nil {
		response.Fail(w, scope, err, "invalid report period")

		return
	}

	report, err := handler.service.Occupancy(ctx, period)
	if err != nil {
		response.Fail(w, scope, err, "failed to build occupancy report")

		return
	}

	response.WithJSON(w, http.StatusOK, report)
}
