// Package types defines the value types, collaborator interfaces, and
// standard errors shared by the semprops library, its storage backend, and
// the CLI.
//
// Property designators resolve to a PropertyRef. User values are modeled as
// the tagged unions Scalar and Value, which are validated when they are
// constructed. The builder turns an AssignmentArray into Assignments, which
// are handed to a DataContainer.
package types
