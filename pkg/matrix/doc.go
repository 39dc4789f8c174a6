// Package matrix implements the nested permission grid edited by the role
// wizard: product -> resource category -> resource -> permission type -> bool.
//
// Entries absent from the grid read as false. Column and row bulk operations
// enumerate the static catalog, not the stored map, so "select all" semantics
// stay consistent with what the grid renders.
package matrix
