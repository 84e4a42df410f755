// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package showurl

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var showURLRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "urlview_show_url_requests_total",
		Help: "show_url requests received by the listener, by response status",
	},
	[]string{"status"},
)

func recordRequest(status int) {
	showURLRequests.With(prometheus.Labels{"status": strconv.Itoa(status)}).Inc()
}
