package client

import (
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func metricsMiddleware(meter metric.Meter) Middleware {
	completed := metric.Must(meter).NewInt64Counter(
		"http/client/completed_count",
		metric.WithDescription("Count of completed requests, by HTTP method and response status"),
	)
	duration := metric.Must(meter).NewFloat64ValueRecorder(
		"http/client/duration",
		metric.WithDescription("Request latency in milliseconds, by HTTP method and response status"),
	)

	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.Do(req)

			status := "error"
			if err == nil {
				status = strconv.Itoa(resp.StatusCode)
			}
			labels := []attribute.KeyValue{
				attribute.String("method", req.Method),
				attribute.String("status", status),
			}
			completed.Add(req.Context(), 1, labels...)
			duration.Record(req.Context(), float64(time.Since(start))/float64(time.Millisecond), labels...)

			return resp, err
		})
	}
}
