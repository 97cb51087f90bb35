// Package handler is the first layer after the router.
//
// Endpoints are declared as data (method, path, parameters, response model)
// and run through one shared pipeline: parameters are bound and validated by
// the params package, the endpoint body calls the service layer, and the
// result is projected onto its response model before it is written.
package handler
