// Package calc implements the calculator tools: dates, body mass index,
// percentages, loans and tips. Results are formatted with English digit
// grouping.
package calc
