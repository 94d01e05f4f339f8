package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jalvarez-dev/employee-gateway/api/controllers"
	"github.com/jalvarez-dev/employee-gateway/api/middleware"
	"github.com/jalvarez-dev/employee-gateway/internal/employees"
	"github.com/jalvarez-dev/employee-gateway/pkg/config"
	"github.com/jalvarez-dev/employee-gateway/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	employeeService employees.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/employees", func(r chi.Router) {
		r.Get("/", controllers.EmployeeList(employeeService, logg))
		r.Get("/search/{searchString}", controllers.EmployeeSearch(employeeService, logg))
		r.Get("/highest-salary", controllers.EmployeeHighestSalary(employeeService, logg))
		r.Get("/top-earners", controllers.EmployeeTopEarners(employeeService, logg))
		r.Get("/{employeeId}", controllers.EmployeeByID(employeeService, logg))
		r.Post("/", controllers.EmployeeCreate(employeeService, logg))
		r.Delete("/{employeeId}", controllers.EmployeeDelete(employeeService, logg))
	})

	return r
}
