// Package types defines the Store and Table interfaces, the tool widget
// contract, entity types, and the standard errors shared by every toolbox
// package. Nothing in this package performs I/O.
package types
