package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Admission decisions recorded by the auth/role gate. Labels match the
// machine-readable codes returned to clients, plus "admitted".
var AuthDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "talentpool_auth_decisions_total",
		Help: "Admission decisions made by the auth and role middleware.",
	},
	[]string{"decision"},
)

var EmailsSent = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "talentpool_emails_sent_total",
		Help: "Emails handed to the SMTP collaborator, by kind and outcome.",
	},
	[]string{"kind", "status"},
)

// Handler exposes the default registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
