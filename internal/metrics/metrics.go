package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minihack_registrations_total",
			Help: "Registration attempts by terminal outcome",
		},
		[]string{"outcome"}, // success|validation_failed|duplicate|rate_limited|insert_failed
	)

	ResumeUploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minihack_resume_uploads_total",
			Help: "Resume uploads by result",
		},
		[]string{"result"}, // success|rejected|error
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		RegistrationsTotal,
		ResumeUploadsTotal,
	)
}
