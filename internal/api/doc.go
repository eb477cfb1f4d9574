// Package api implements the HTTP handlers for the application: auth,
// task CRUD, and the small unauthenticated utility endpoints. Handlers
// decode and validate requests, delegate to services, and map errors to
// status codes centrally; no business rules live here.
package api
