package metrics

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/notargets/gostp/model_problems/RAC"
)

var (
	racTemperatureGauge  = prometheus.NewGauge(prometheus.GaugeOpts{Name: "gostp_rac_temperature_kelvin"})
	propellantTempGauge  = prometheus.NewGauge(prometheus.GaugeOpts{Name: "gostp_propellant_outlet_temperature_kelvin"})
	chamberPressureGauge = prometheus.NewGauge(prometheus.GaugeOpts{Name: "gostp_chamber_pressure_pascal"})
	thrustGauge          = prometheus.NewGauge(prometheus.GaugeOpts{Name: "gostp_thrust_newton"})
	ispGauge             = prometheus.NewGauge(prometheus.GaugeOpts{Name: "gostp_specific_impulse_seconds"})
	simTimeGauge         = prometheus.NewGauge(prometheus.GaugeOpts{Name: "gostp_simulation_time_seconds"})
	velocityRatioGauge   = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gostp_channel_velocity_ratio",
		Help: "Channel inlet velocity over the erosion limit, 0 without flow",
	})
	powerGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gostp_power_watts",
			Help: "Power terms of the RAC energy balance (in Watts)",
		},
		[]string{"term"},
	)
	runStatusGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gostp_run_status",
			Help: "1 for the status of the latest run, 0 for the others",
		},
		[]string{"status"},
	)
	stepsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gostp_steps_total",
		Help: "Integration steps recorded across all runs",
	})
	fallbackCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gostp_channel_fallback_steps_total",
		Help: "Steps that used the channel enthalpy fallback",
	})
)

func init() {
	prometheus.MustRegister(
		racTemperatureGauge, propellantTempGauge, chamberPressureGauge,
		thrustGauge, ispGauge, simTimeGauge, velocityRatioGauge,
		powerGauge, runStatusGauge, stepsCounter, fallbackCounter,
	)
}

// UpdateStep publishes one step of a transient run
func UpdateStep(sr RAC.StepResult) {
	simTimeGauge.Set(sr.Time)
	racTemperatureGauge.Set(sr.Temperature)
	propellantTempGauge.Set(sr.Tpo)
	chamberPressureGauge.Set(sr.Pc)
	thrustGauge.Set(sr.Thrust)
	ispGauge.Set(sr.Isp)
	if math.IsNaN(sr.VelocityRatio) {
		velocityRatioGauge.Set(0)
	} else {
		velocityRatioGauge.Set(sr.VelocityRatio)
	}
	for term, P := range map[string]float64{
		"in": sr.Pin, "P1": sr.P1, "P2": sr.P2, "P3": sr.P3, "P4": sr.P4,
		"P5": sr.P5, "P6": sr.P6, "P7": sr.P7,
	} {
		powerGauge.WithLabelValues(term).Set(P)
	}
	stepsCounter.Inc()
	if sr.FallbackUsed {
		fallbackCounter.Inc()
	}
}

// SetStatus marks the status of the latest run
func SetStatus(status RAC.Status) {
	for _, s := range []RAC.Status{RAC.Running, RAC.Completed, RAC.OverTemperature, RAC.Failed} {
		v := 0.
		if s == status {
			v = 1
		}
		runStatusGauge.WithLabelValues(s.String()).Set(v)
	}
}
