// Package systems detects which game system a native record belongs to and
// routes conversions to the adapter registered for that system.
//
// Detection is a fixed, ordered list of structural signatures. The first
// signature a record satisfies decides its system tag; records matching none
// are tagged "other". Routing is a registry lookup with an explicit branch for
// tags that have no adapter.
package systems
