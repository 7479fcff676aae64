// Package query composes paginated, filtered, sorted and tenant-scoped
// database queries from untrusted HTTP query parameters.
//
// The package is the read-path backbone of every list endpoint in the
// platform: a handler resolves the acting store, seeds a builder with the
// trusted tenant predicate, chains the phases it needs and executes the
// composed plan against any Source implementation (MongoDB collection,
// PostgreSQL table, or an in-memory fake in tests).
//
// # Usage
//
//	params := query.ParamsFromValues(r.URL.Query())
//
//	b := query.NewTenantScoped("tenantId", tenantID, params).
//		Search("orderNumber", "customer.fullName").
//		Filter().
//		Sort().
//		Paginate()
//
//	result, err := query.Execute(ctx, b, orders)
//	if err != nil {
//		// validation or datasource error
//	}
//	// result.Data, result.Meta
//
// # Tenant safety
//
// A builder created with NewTenantScoped treats the tenant identity field as
// protected: request parameters that name it are rejected with
// ErrProtectedField instead of silently overwriting the trusted predicate.
// Additional trusted conditions added with BaseWhere are protected the same
// way.
//
// # Validation
//
// Malformed input is rejected eagerly rather than deferred to the database
// driver. Chainable methods record the first validation error and every
// terminal operation (Execute, Count, Where, Args) returns it, so a handler
// only needs a single error check.
//
// # Single use
//
// A Builder accumulates state per instance and is not safe for concurrent
// use. Create a fresh builder per request and discard it after execution.
package query
