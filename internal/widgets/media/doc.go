// Package media implements the generator and file tools: barcodes, QR
// codes, image resizing and CSV to spreadsheet conversion. Every tool
// returns its artefact as a downloadable Result.
package media
