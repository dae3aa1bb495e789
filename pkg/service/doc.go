// Package service exposes attribute parsing and formatting over HTTP.
//
// Routes:
//
//	POST /v1/parse   normalize attributes, return them as JSON
//	POST /v1/format  normalize, apply updates and removals, return markup
//	GET  /healthz    liveness
//	GET  /metrics    Prometheus metrics (when a gatherer is configured)
//
// A request body looks like:
//
//	{
//	  "input": "class=\"card\" disabled",
//	  "attributes": {"id": "main"},
//	  "booleans": ["hidden"],
//	  "update": "title='Hello'",
//	  "remove": ["disabled"],
//	  "charset": "UTF-8"
//	}
//
// Every request gets its own attribute store, so handlers share no mutable
// state besides the metrics.
package service
