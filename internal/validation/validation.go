// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce numeric and length
// constraints declared on fields and parameters, evaluated in the
// order they were declared, and turns failures into field errors
// the client can understand
package validation
