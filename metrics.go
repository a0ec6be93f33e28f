// Copyright 2025 The Strada Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusObserver exports resolution metrics to a Prometheus registry:
// the counter "router_resolutions_total" and the histogram
// "router_resolution_duration_seconds", both labeled by route and outcome.
type PrometheusObserver struct {
	resolutions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewPrometheusObserver creates and registers the collectors on reg.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "router_resolutions_total",
		Help: "Route resolutions by route and outcome.",
	}, []string{"route", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "router_resolution_duration_seconds",
		Help:    "Route resolution duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "outcome"})

	if err := reg.Register(resolutions); err != nil {
		return nil, err
	}
	if err := reg.Register(duration); err != nil {
		return nil, err
	}
	return &PrometheusObserver{resolutions: resolutions, duration: duration}, nil
}

// ObserveResolve records the event on both collectors.
func (o *PrometheusObserver) ObserveResolve(e ResolveEvent) {
	labels := prometheus.Labels{"route": e.Route, "outcome": string(e.Outcome)}
	o.resolutions.With(labels).Inc()
	o.duration.With(labels).Observe(e.Duration.Seconds())
}
