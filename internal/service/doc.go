// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects, repositories
// (defined in internal/store) and the side cache (internal/cache).
//
// Key components:
//
// 1. TaskService:
//   - Serves the task listing cache-first and repopulates the cache on a miss
//   - Writes to the store first, then invalidates the cached listing
//
// 2. Error Handling:
//   - Validation failures surface as domain.ValidationError
//   - Store failures are wrapped in ServiceError and keep their sentinel for errors.Is
//   - Cache failures never fail a request; they are logged and the store is used
//
// The service layer depends on domain entities and the store and cache
// interfaces, never on specific infrastructure implementations.
package service
