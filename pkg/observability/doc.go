// Package observability provides the Prometheus collector for editor change
// traffic. Each collector owns its registry so tests can build as many as
// they need without colliding on the default registerer.
package observability
