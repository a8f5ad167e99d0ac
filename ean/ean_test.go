package ean

import (
	"fmt"
	"image/color"
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/boombuler/barcode"
	bbean "github.com/boombuler/barcode/ean"
	"github.com/intel/rsp-sw-toolkit-im-suite-bookland/ident"
	"github.com/intel/rsp-sw-toolkit-im-suite-expect"
	"github.com/pkg/errors"
)

const programmingPython = "L0L0111011000100101100110110001000010101100010" +
	"L0L0111010011011001100110111010010001001110100L0L"

func TestDerive(t *testing.T) {
	type deriveTest struct {
		name, input    string
		number, parity string
		left, right    string
	}

	for i, tt := range []deriveTest{
		{"ISBN", "1-56592-197-6", "9781565921979", "ABBABACCCCCC", "781565", "921979"},
		{"completed ISBN", "1-56592-197", "9781565921979", "ABBABACCCCCC", "781565", "921979"},
		{"ISBN with X", "0-8044-2957-X", "9780804429573", "ABBABACCCCCC", "780804", "429573"},
		{"ISMN", "M-2306-7118-7", "9790230671187", "ABBABACCCCCC", "790230", "671187"},
		{"ISMN", "M666003125", "9790666003125", "ABBABACCCCCC", "790666", "003125"},
	} {
		t.Run(fmt.Sprintf("%02d_%s", i, tt.name), func(t *testing.T) {
			w := expect.WrapT(t)
			id := w.StopOnMismatch().ShouldHaveResult(ident.Parse(tt.input)).(ident.Identifier)
			n := w.StopOnMismatch().ShouldHaveResult(Derive(id)).(Number)
			w.ShouldBeEqual(n.String(), tt.number)
			w.ShouldHaveLength(n.String(), EAN13.Length)
			w.ShouldBeEqual(n.Leading(), "9")
			w.ShouldBeEqual(n.Parity(), tt.parity)
			w.ShouldBeEqual(n.Left(), tt.left)
			w.ShouldBeEqual(n.Right(), tt.right)
		})
	}
}

func TestDerive_checkDigitRecomputed(t *testing.T) {
	// the EAN-13 check digit is unrelated to the ISBN's
	w := expect.WrapT(t)
	id := ident.MustParse("1-56592-197-6")
	n := w.ShouldHaveResult(Derive(id)).(Number)
	w.ShouldBeEqual(n.Body, "156592197")
	w.ShouldBeEqual(n.Check, byte('9'))
	w.ShouldBeEqual(id.CheckDigit(), byte('6'))

	w.ShouldHaveError(Derive(ident.Identifier{}))
}

func TestNumber_Pattern(t *testing.T) {
	w := expect.WrapT(t)
	n := w.ShouldHaveResult(Derive(ident.MustParse("1-56592-197-6"))).(Number)
	p := w.ShouldHaveResult(n.Pattern()).(string)
	w.ShouldBeEqual(p, programmingPython)
	w.ShouldBeTrue(strings.HasPrefix(p, EAN13Guard))
	w.ShouldBeTrue(strings.HasSuffix(p, EAN13Guard))
	w.ShouldBeEqual(p[45:50], EAN13Center)
}

func TestParseNumber(t *testing.T) {
	w := expect.WrapT(t)

	n := w.ShouldHaveResult(ParseNumber("978-1-56592-197-9")).(Number)
	w.ShouldBeEqual(n.String(), "9781565921979")
	n = w.ShouldHaveResult(ParseNumber("978156592197")).(Number)
	w.ShouldBeEqual(n.String(), "9781565921979")
	w.ShouldBeEqual(n.Prefix, "978")

	_, err := ParseNumber("9781565921970")
	w.ShouldFail(err)
	cm, ok := errors.Cause(err).(*ChecksumMismatch)
	w.StopOnMismatch().As(err).ShouldBeTrue(ok)
	w.ShouldBeEqual(cm.Supplied, byte('0'))
	w.ShouldBeEqual(cm.Expected, byte('9'))

	w.ShouldHaveError(ParseNumber("97815659219"))
	w.ShouldHaveError(ParseNumber("97815659219790"))
	w.ShouldHaveError(ParseNumber("97815659219X"))
	w.ShouldHaveError(ParseNumber(""))
}

func TestEncode(t *testing.T) {
	w := expect.WrapT(t)

	w.ShouldBeEqual(w.ShouldHaveResult(Encode("09", "AC", EAN13Codes)).(string),
		"0001101"+"1110100")
	w.ShouldBeEqual(w.ShouldHaveResult(Encode("", "", EAN13Codes)).(string), "")

	w.ShouldHaveError(Encode("09", "A", EAN13Codes))
	w.ShouldHaveError(Encode("0X", "AA", EAN13Codes))
	w.ShouldHaveError(Encode("09", "AO", EAN13Codes))
}

func TestTables(t *testing.T) {
	w := expect.WrapT(t)

	// every code is 7 modules with 2 bars and 2 spaces, and codes are unique
	// within each table
	for name, table := range map[string]Table{
		"EAN-13": EAN13Codes, "UPC-A": UPCACodes, "UPC-5": UPC5Codes} {
		seen := map[string]bool{}
		for parity, col := range table {
			for d, code := range col {
				w.As(name).ShouldHaveLength(code, CodeLength)
				runs := 1
				for i := 1; i < len(code); i++ {
					if code[i] != code[i-1] {
						runs++
					}
				}
				w.As(fmt.Sprintf("%s %c %d", name, parity, d)).ShouldBeEqual(runs, 4)
				w.As(code).ShouldBeFalse(seen[code])
				seen[code] = true
			}
		}
	}

	// B codes are C codes reversed
	for d := 0; d < 10; d++ {
		c := []byte(EAN13Codes['C'][d])
		for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
			c[i], c[j] = c[j], c[i]
		}
		w.ShouldBeEqual(EAN13Codes['B'][d], string(c))
	}

	w.ShouldHaveLength(EAN13Parity, 10)
	w.ShouldHaveLength(UPC5Parity, 10)
}

func TestFamily_lengths(t *testing.T) {
	// patterns are always 95 modules for EAN-13 and UPC-A, and 47 for UPC-5
	w := expect.WrapT(t)
	for i := 0; i < 500; i++ {
		n := w.StopOnMismatch().ShouldHaveResult(
			ParseNumber(fmt.Sprintf("%012d", rand.Int63n(1e12)))).(Number)
		p := w.StopOnMismatch().ShouldHaveResult(n.Pattern()).(string)
		w.As(n).ShouldHaveLength(p, 95)

		upca := fmt.Sprintf("%012d", rand.Int63n(1e12))
		p = w.StopOnMismatch().ShouldHaveResult(UPCA.Pattern(upca)).(string)
		w.As(upca).ShouldHaveLength(p, 95)

		a := w.StopOnMismatch().ShouldHaveResult(
			ParseAddOn(fmt.Sprintf("%05d", rand.Intn(100000)))).(AddOn)
		p = w.StopOnMismatch().ShouldHaveResult(a.Pattern()).(string)
		w.As(a).ShouldHaveLength(p, 47)
		w.ShouldBeTrue(strings.HasPrefix(p, UPC5Guard))
	}

	w.ShouldHaveError(EAN13.Pattern("978156592197"))
	w.ShouldHaveError(UPC5.Pattern("9000"))
	w.ShouldHaveError(UPC5.Pattern("9000X"))
	w.ShouldHaveError(EAN13.Pattern("X781565921979"))
}

func TestUPCA_isEAN13WithLeadingZero(t *testing.T) {
	w := expect.WrapT(t)
	for _, upca := range []string{"036000291452", "012345678905", "000000000000"} {
		a := w.ShouldHaveResult(UPCA.Pattern(upca)).(string)
		e := w.ShouldHaveResult(EAN13.Pattern("0" + upca)).(string)
		w.As(upca).ShouldBeEqual(a, e)

		row := w.ShouldHaveResult(EAN13.ParityRow("0" + upca)).(string)
		w.ShouldBeEqual(row, "AAAAAACCCCCC")
	}
}

func TestEAN13_matchesBoombuler(t *testing.T) {
	// compare black and white modules with an independent encoder; it
	// doesn't distinguish guard modules, so 'L' is compared as black
	w := expect.WrapT(t)

	numbers := []string{"9781565921979", "9790230671187", "4006381333931", "0036000291452"}
	for i := 0; i < 200; i++ {
		n := w.StopOnMismatch().ShouldHaveResult(
			ParseNumber(fmt.Sprintf("%012d", rand.Int63n(1e12)))).(Number)
		numbers = append(numbers, n.String())
	}

	for _, number := range numbers {
		p := w.StopOnMismatch().ShouldHaveResult(EAN13.Pattern(number)).(string)
		bc := w.StopOnMismatch().As(number).ShouldHaveResult(bbean.Encode(number)).(barcode.Barcode)
		w.StopOnMismatch().ShouldBeEqual(bc.Bounds().Dx(), len(p))

		for x := 0; x < len(p); x++ {
			black := bc.At(x, 0) == color.Black
			if black != (p[x] != '0') {
				t.Errorf("%s: module %d is %c, but boombuler has black=%t",
					number, x, p[x], black)
				break
			}
		}
	}
}

func TestAddOn(t *testing.T) {
	type addOnTest struct {
		addOn, parity, pattern string
		residue                int
	}

	for i, tt := range []addOnTest{
		{"90000", "OEOEO", "10110001011010100111010001101010100111010001101", 7},
		{"00000", "EEOOO", "10110100111010100111010001101010001101010001101", 0},
		{"50695", "OOEOE", "10110110001010001101010000101010001011010111001", 9},
	} {
		t.Run(fmt.Sprintf("%02d_%s", i, tt.addOn), func(t *testing.T) {
			w := expect.WrapT(t)
			a := w.StopOnMismatch().ShouldHaveResult(ParseAddOn(tt.addOn)).(AddOn)
			w.ShouldBeEqual(a.String(), tt.addOn)
			w.ShouldBeEqual(a.Residue(), tt.residue)
			w.ShouldBeEqual(a.Parity(), tt.parity)
			w.ShouldBeEqual(w.ShouldHaveResult(a.Pattern()).(string), tt.pattern)
			w.ShouldBeEqual(w.ShouldHaveResult(UPC5.ParityRow(tt.addOn)).(string), tt.parity)
		})
	}
}

func TestParseAddOn_invalid(t *testing.T) {
	w := expect.WrapT(t)

	for _, tt := range []struct {
		input string
		pos   int
		c     rune
	}{
		{"9000", -1, 0},
		{"900000", -1, 0},
		{"", -1, 0},
		{"9000a", 4, 'a'},
		{" 90000", 0, ' '},
		{"90-00", 2, '-'},
		{"9000é", 4, 'é'},
		{"９0000", 0, '９'},
		{"90\xff00", 2, utf8.RuneError},
	} {
		_, err := ParseAddOn(tt.input)
		w.As(tt.input).ShouldFail(err)
		iac, ok := errors.Cause(err).(*InvalidAddOnCode)
		w.StopOnMismatch().As(err).ShouldBeTrue(ok)
		w.ShouldBeEqual(iac.Position, tt.pos)
		w.ShouldBeEqual(iac.Char, tt.c)
		w.ShouldNotBeEmptyStr(iac.Error())
		if tt.c != 0 && tt.c != utf8.RuneError {
			w.As(iac.Error()).ShouldBeTrue(strings.Contains(iac.Error(), string(tt.c)))
		}
	}
}

func TestAddOnFor(t *testing.T) {
	w := expect.WrapT(t)
	isbn := ident.MustParse("1-56592-197-6")
	ismn := ident.MustParse("M-2306-7118-7")

	a, ok, err := AddOnFor(isbn, "90000")
	w.ShouldSucceed(err)
	w.ShouldBeTrue(ok)
	w.ShouldBeEqual(a.String(), "90000")

	for _, blank := range []string{"", " ", "     "} {
		_, ok, err = AddOnFor(isbn, blank)
		w.ShouldSucceed(err)
		w.As(blank).ShouldBeFalse(ok)

		_, ok, err = AddOnFor(ismn, blank)
		w.ShouldSucceed(err)
		w.ShouldBeFalse(ok)
	}

	_, ok, err = AddOnFor(ismn, "90000")
	w.ShouldFail(err)
	w.ShouldBeFalse(ok)
	_, isIAC := errors.Cause(err).(*InvalidAddOnCode)
	w.As(err).ShouldBeTrue(isIAC)

	_, _, err = AddOnFor(isbn, "9000")
	w.ShouldFail(err)
}

func TestDecode(t *testing.T) {
	w := expect.WrapT(t)

	number := w.ShouldHaveResult(EAN13.Decode(programmingPython)).(string)
	w.ShouldBeEqual(number, "9781565921979")

	for i := 0; i < 200; i++ {
		n := fmt.Sprintf("%013d", rand.Int63n(1e13))
		p := w.StopOnMismatch().ShouldHaveResult(EAN13.Pattern(n)).(string)
		w.As(p).ShouldBeEqual(w.ShouldHaveResult(EAN13.Decode(p)).(string), n)

		upca := n[1:]
		p = w.StopOnMismatch().ShouldHaveResult(UPCA.Pattern(upca)).(string)
		w.As(p).ShouldBeEqual(w.ShouldHaveResult(UPCA.Decode(p)).(string), upca)

		addOn := n[:5]
		p = w.StopOnMismatch().ShouldHaveResult(UPC5.Pattern(addOn)).(string)
		w.As(p).ShouldBeEqual(w.ShouldHaveResult(UPC5.Decode(p)).(string), addOn)
	}
}

func TestDecode_invalid(t *testing.T) {
	w := expect.WrapT(t)

	// wrong length
	w.ShouldHaveError(EAN13.Decode(programmingPython[1:]))

	// damaged guard
	w.ShouldHaveError(EAN13.Decode("101" + programmingPython[3:]))

	// not a code: 7 modules of white
	w.ShouldHaveError(EAN13.Decode(programmingPython[:3] + "0000000" + programmingPython[10:]))

	// a UPC-A pattern must have UPC-A parity
	w.ShouldHaveError(UPCA.Decode(programmingPython))

	// swap the parity of the add-on's first digit so it no longer matches
	// its checksum: 9 as O is 0001011; as E it's 0010111
	p := "10110001011010100111010001101010100111010001101"
	w.ShouldBeEqual(w.ShouldHaveResult(UPC5.Decode(p)).(string), "90000")
	w.ShouldHaveError(UPC5.Decode("1011" + "0010111" + p[11:]))
}
