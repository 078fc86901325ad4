// Package convert implements the unit, number and currency converter tools.
//
// Every physical converter goes through a base unit: a value is scaled into
// the base and back out into the target unit, so conversions compose.
package convert
