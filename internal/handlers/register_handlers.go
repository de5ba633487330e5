package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	portssvc "github.com/agribooks/ledger-core/internal/core/ports/services"
	"github.com/agribooks/ledger-core/pkg/config"
)

// accountNumberPattern accepts the numeric chart ranges (e.g. 1010, 3900).
// Numbers sort lexicographically, which the account listing relies on, so
// they are fixed-width digit strings rather than integers.
var accountNumberPattern = regexp.MustCompile(`^[0-9]{3,10}$`)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerAccountRoutes(v1, services.Account)
	registerJournalRoutes(v1, services.Journal)
	registerLedgerRoutes(v1, services.Ledger)
	registerFiscalRoutes(v1, services.Fiscal)
}

// registerCustomValidators hooks request-level validators into gin's binding engine.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("accountnumber", func(fl validator.FieldLevel) bool { //nolint:errcheck
			return accountNumberPattern.MatchString(fl.Field().String())
		})
	}
}
