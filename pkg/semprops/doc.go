// Package semprops resolves property designators and encodes user values
// for a semantic wiki data store.
//
// The package is organized leaf-first:
//
//   - Normalizer trims a raw property string, strips a property namespace
//     prefix, and canonicalizes case and spacing.
//   - Resolver maps a normalized label, alias, or ID to a property ID, and
//     an ID back to its display label, using a types.PropertyRegistry.
//   - Encoder turns scalars and records into value strings. Record
//     sub-values are joined with ";" and literal semicolons are escaped.
//   - Builder turns a user assignment array into grouped, encoded
//     types.Assignments, optionally adding a linkback entry.
//
// Converter and Buffer sit on top for host integrations: Converter binds the
// caller name and page used in error messages and subobjects, and Buffer
// collects values added during one request until they are moved into a
// types.DataContainer.
//
// Everything except Buffer is stateless and safe for concurrent use as long
// as the registry and namespace service are.
package semprops
