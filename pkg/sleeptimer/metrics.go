/*
 * Copyright 2026 PlayerKit Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sleeptimer

import "github.com/prometheus/client_golang/prometheus"

var (
	armsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sleeptimer_arms_total",
		Help: "Total number of timer arm instructions.",
	})
	cancelsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sleeptimer_cancels_total",
		Help: "Total number of timer cancel instructions, including out-of-range timeouts coerced to cancel.",
	})
	expiriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sleeptimer_expiries_total",
		Help: "Total number of timer expiries that invoked the exit callback.",
	})
	armedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sleeptimer_armed",
		Help: "Whether a timer is currently armed (1) or not (0).",
	})
)

func init() {
	prometheus.MustRegister(armsTotal, cancelsTotal, expiriesTotal, armedGauge)
}
