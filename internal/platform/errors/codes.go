// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Character errors
	CodeCharacterNotFound      Code = "CHARACTER_NOT_FOUND"
	CodeCharacterInvalidRecord Code = "CHARACTER_INVALID_RECORD"
	CodeCharacterIDRequired    Code = "CHARACTER_ID_REQUIRED"
	CodeCharacterUpdateFailed  Code = "CHARACTER_UPDATE_FAILED"

	// System errors
	CodeUnsupportedGameSystem Code = "UNSUPPORTED_GAME_SYSTEM"

	// Host errors
	CodeHostUnavailable Code = "HOST_UNAVAILABLE"
	CodeHostQueryFailed Code = "HOST_QUERY_FAILED"

	// Query errors
	CodeInvalidFilter Code = "INVALID_FILTER"
)

// Category groups codes by how a caller should react to them.
type Category string

const (
	CategoryInvalidArgument Category = "invalid_argument"
	CategoryNotFound        Category = "not_found"
	CategoryUnavailable     Category = "unavailable"
	CategoryInternal        Category = "internal"
)

// Category maps domain codes to caller-facing categories.
func (c Code) Category() Category {
	switch c {
	case CodeCharacterInvalidRecord,
		CodeCharacterIDRequired,
		CodeUnsupportedGameSystem,
		CodeInvalidFilter:
		return CategoryInvalidArgument

	case CodeCharacterNotFound:
		return CategoryNotFound

	case CodeHostUnavailable:
		return CategoryUnavailable

	default:
		return CategoryInternal
	}
}
