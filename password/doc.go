// Package password provides the one-way adaptive hash comparator consumed by
// the Basic authentication flow. The stored hash's salt and cost travel
// inside the encoded hash string; callers treat both as opaque.
//
// # What this package must NOT do
//
//   - Persist anything. Hash inputs and outputs are values; storage belongs
//     to the caller's user repository.
//   - Leak timing. Verification cost is dominated by the bcrypt comparison
//     itself, which is constant for a given stored cost.
package password
