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
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome labels a resolution result in observer events and metrics.
type Outcome string

const (
	OutcomeMatched   Outcome = "matched"
	OutcomeUnmatched Outcome = "unmatched"
)

// ResolveEvent describes one top-level resolution for observers.
type ResolveEvent struct {
	// Path is the URL the matcher was asked to resolve.
	Path string

	// Route and Pattern identify the winning alternative; both are empty
	// when the outcome is unmatched.
	Route   string
	Pattern string

	Outcome  Outcome
	Err      error
	Duration time.Duration
}

// Observer receives a ResolveEvent after each top-level TryParse. An
// observer must be safe for concurrent use; the matcher calls it inline, so
// slow observers slow resolution.
type Observer interface {
	ObserveResolve(ResolveEvent)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ResolveEvent)

// ObserveResolve calls f.
func (f ObserverFunc) ObserveResolve(e ResolveEvent) {
	f(e)
}

func newResolveEvent(path string, v *Value, err error, d time.Duration) ResolveEvent {
	e := ResolveEvent{Path: path, Outcome: OutcomeMatched, Err: err, Duration: d}
	if err != nil {
		e.Outcome = OutcomeUnmatched
		return e
	}
	e.Route = v.def.Name()
	e.Pattern = v.def.Pattern()
	return e
}

// OTelObserver exports resolution metrics through an OpenTelemetry meter:
// the counter "router.resolutions" and the histogram
// "router.resolution.duration", both attributed by route and outcome.
type OTelObserver struct {
	resolutions metric.Int64Counter
	duration    metric.Float64Histogram
}

// NewOTelObserver creates the instruments on a meter from mp.
func NewOTelObserver(mp metric.MeterProvider) (*OTelObserver, error) {
	meter := mp.Meter("strada.dev/router")

	resolutions, err := meter.Int64Counter("router.resolutions",
		metric.WithDescription("Route resolutions by route and outcome."))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("router.resolution.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Route resolution duration in seconds."))
	if err != nil {
		return nil, err
	}
	return &OTelObserver{resolutions: resolutions, duration: duration}, nil
}

// ObserveResolve records the event on both instruments.
func (o *OTelObserver) ObserveResolve(e ResolveEvent) {
	attrs := metric.WithAttributes(
		attribute.String("route", e.Route),
		attribute.String("outcome", string(e.Outcome)),
	)
	ctx := context.Background()
	o.resolutions.Add(ctx, 1, attrs)
	o.duration.Record(ctx, e.Duration.Seconds(), attrs)
}
