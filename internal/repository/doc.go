// Package repository implements the data access layer for the school portal.
//
// Each repository struct handles the SurrealDB operations for one domain
// entity (schools, members, sessions, attendance sheets, grades, assignments,
// schedules, events).
//
// # Repository Pattern
//
// All repositories follow a consistent pattern:
//
//   - Constructor function (NewXxxRepository) accepts a database connection
//   - Methods implement specific data operations (Create, GetByID, List, etc.)
//   - SurrealQL queries are used for all database interactions
//   - Results are parsed and mapped to model structs
//
// # Database Connection
//
// Repositories accept a database.Database interface, allowing:
//
//   - Connection management at a higher level
//   - Atomic multi-statement batches when needed
//   - Easy testing with mock implementations
//
// # Query Patterns
//
// Common query patterns used:
//
//   - Parameterized queries with $variable syntax for security
//   - type::record() for safe ID handling
//   - time::now() for automatic timestamps
//   - string::lowercase() for case-insensitive matching
package repository
