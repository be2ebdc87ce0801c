package constants

const (
	// Pagination
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Upper bound on tasks extracted from a single text
	MaxExtractedTasks = 20
)
