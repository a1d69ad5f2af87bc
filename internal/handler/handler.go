// Package handler is the HTTP layer.
//
// Each route is a typed function wrapped by Handle: the payload is bound
// from path, query and body, validated against its rules, passed to the
// service and the result is written as JSON. Errors are returned to the
// global error handler.
package handler
