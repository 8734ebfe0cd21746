// Package cnrange expands a common name range expression, such as
// YDL0001-YDL0010, into the ordered list of common names it denotes.
//
// The expression grammar is:
//
//	range  = prefix digits "-" prefix digits
//	prefix = 1*ALPHA
//	digits = 1*DIGIT
//
// Only the first prefix is used to build names, and the zero-pad width
// is the literal length of the first number.
package cnrange
