// Package http implements the REST API of the clinic server.
//
// It exposes route wiring, request handlers and middleware. Cross-cutting
// concerns such as request tracing, access logging, CORS, serialization of
// controller access and bearer-token authentication are handled here before
// requests are delegated to the controller.
package http
