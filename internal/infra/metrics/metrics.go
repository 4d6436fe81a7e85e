package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	VendasCriadas = promauto.NewCounter(prometheus.CounterOpts{
		Name: "revenda_vendas_criadas_total",
		Help: "Total de vendas registradas.",
	})

	ItensVendidos = promauto.NewCounter(prometheus.CounterOpts{
		Name: "revenda_itens_vendidos_total",
		Help: "Total de unidades vendidas (soma das quantidades).",
	})

	GarantiasAbertas = promauto.NewCounter(prometheus.CounterOpts{
		Name: "revenda_garantias_abertas_total",
		Help: "Total de garantias registradas.",
	})

	VouchersEmitidos = promauto.NewCounter(prometheus.CounterOpts{
		Name: "revenda_vouchers_emitidos_total",
		Help: "Total de vouchers emitidos por devoluções concluídas.",
	})
)

// Handler expõe /metrics no formato Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}
