// Package ident parses and validates the identifiers printed above a Bookland
// symbol: the ISBN (International Standard Book Number, 10-character form)
// and the ISMN (International Standard Music Number).
//
// An ISBN is 9 digits followed by a check character computed with weights
// 10, 9, ..., 2 modulo 11; a check value of 10 is written as 'X'. The digits
// are normally hyphenated into group, publisher, title and check parts, but
// the correct hyphenation depends on registration ranges and can't be
// derived from the digits, so it is taken as given:
//     1-56592-197-6
//
// An ISMN is just like an ISBN, except:
// - the first character is an 'M'
// - the 'M' counts as a 3 when computing the check digit
// - the weights are 3, 1, 3, 1, ... and the modulus is 10, so the check
//   character is always a decimal digit
//     M-2306-7118-7
//
// Parse accepts either form, with or without hyphens (ISMNs may also use
// spaces), and with or without the trailing check character. A check
// character that is present is verified; one that is missing is computed
// and appended. Input is normalized first, so lower case 'm' and 'x' and
// full-width digits are accepted.
//
// The 'M' to 3 substitution is only a checksum rule. The display form keeps
// the 'M', and the EAN-13 number derived from an ISMN uses 0 in its place;
// see package ean.
package ident
