// Package ean encodes the UPC-A/EAN-13 family of symbols and the UPC-5
// add-on as module patterns.
//
// A Bookland symbol is an EAN-13 symbol whose number is derived from an ISBN
// (prefix 978) or ISMN (prefix 979), optionally followed by a 5-digit add-on
// for the price. Every digit is drawn as 7 modules taken from one of several
// code sets; which set is used for each digit is given by a parity row. For
// EAN-13 the row is selected by the leading digit, which is not otherwise
// drawn; for UPC-5 it's selected by the add-on's checksum, which is not
// printed at all.
//
// A pattern has one character per module:
//     0 - space
//     1 - bar
//     L - guard bar, drawn longer than the others
//
// Each symbology is a Family value holding its tables and assembly rules, so
// encoding and decoding are the same code for all of them.
package ean
