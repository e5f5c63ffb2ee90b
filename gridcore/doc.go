// Package gridcore contains the pure data transformations
// and predicates the grid plugins are built on:
// deriving table rows and columns from data rows and columns,
// classifying table cells and formatting localized messages.
package gridcore
