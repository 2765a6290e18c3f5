package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ordersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_orders_created_total",
			Help: "Total gateway orders created",
		},
	)
	verifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_verifications_total",
			Help: "Total payment verification attempts by outcome",
		},
		[]string{"result"},
	)
	refunds = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_refunds_total",
			Help: "Total refunds issued at the gateway",
		},
	)
)

func init() {
	prometheus.MustRegister(ordersCreated)
	prometheus.MustRegister(verifications)
	prometheus.MustRegister(refunds)
}
