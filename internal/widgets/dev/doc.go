// Package dev implements the developer tools: token and data format
// inspection, identifier and password generators, hashing and syntax
// highlighting.
package dev
