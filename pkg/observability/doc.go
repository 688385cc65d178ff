/*
Package observability binds engine lifecycle hooks to Prometheus metrics and structured logs.

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	eng := parley.New(tree, parley.WithLifecycleHooks(metrics.Hooks().Merge(observability.LogHooks(logger))))
*/
package observability
