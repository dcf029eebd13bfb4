// Package http provides HTTP handlers and middleware for the workspace
// reservation API.
//
// The router exposes the following endpoints, all requiring the service
// API key (X-API-Key header or Authorization bearer value):
//   - GET /api/health: liveness probe.
//   - GET /api/persons, POST /api/persons, GET /api/persons/search?email=,
//     GET /api/persons/{id}, PUT /api/persons/{id}, DELETE /api/persons/{id}:
//     person management exchanging the personDTO payload in person_handler.go.
//   - GET /api/spaces, POST /api/spaces, GET /api/spaces/{id},
//     PUT /api/spaces/{id}, DELETE /api/spaces/{id}: space catalog exchanging
//     the spaceDTO payload in space_handler.go.
//   - GET /api/reservations, POST /api/reservations,
//     GET /api/reservations/{id}, PUT /api/reservations/{id},
//     DELETE /api/reservations/{id}: reservation admission and management
//     exchanging the reservationDTO payload in reservation_handler.go.
//     Listings are paginated via ?page and ?pageSize.
//   - GET /api/reservations/my: the caller's own reservations, resolved from
//     a verified identity token (Authorization: Bearer <token>) on top of
//     the API key.
//
// Every response uses the {"success": ...} envelope; failures carry an
// "error" message and listings a "pagination" block. Request and response
// DTOs live alongside their handlers.
package http
