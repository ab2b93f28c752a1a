package mcf

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	scryptmcf "github.com/dchest/scryptmcf"
)

// TestVectorS4 and TestVectorS5 pin the encoded MCF records for the
// canonical "password"/"NaCl" and "pleaseletmein"/"SodiumChloride"
// scrypt vectors at small N, catching any change to the record's byte
// layout or encoding.
func TestVectorS4(t *testing.T) {
	got, err := GenerateWithSalt([]byte("password"), []byte("NaCl"), 2, 8, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := "$s1$010801$TmFDbA==$5e2O3AGe3+8tPO0Ilvr57saSHcxoElzoHBDVNHTOG+VFl5FZcA0yTnfGjTTFU2NqhCnE88mblWZGaHf53KK5Kw=="
	if string(got) != want {
		t.Errorf("Generate = %s, want %s", got, want)
	}
	ok, err := Check(got, []byte("password"))
	if err != nil || !ok {
		t.Errorf("Check(own record) = %v, %v, want true, nil", ok, err)
	}
}

func TestVectorS5(t *testing.T) {
	got, err := GenerateWithSalt([]byte("pleaseletmein"), []byte("SodiumChloride"), 4, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := "$s1$020101$U29kaXVtQ2hsb3JpZGU=$ux13AWxUOpn+YyycQ8YBgP0F4MrIspN029GFRWnLU09IckDPwGnWpZo18vpcdCiyHZvp+EMVRG1TcRGeAW/t9w=="
	if string(got) != want {
		t.Errorf("Generate = %s, want %s", got, want)
	}

	// S6: stripping the trailing '=' must verify identically.
	stripped := strings.TrimRight(want, "=")
	ok1, err := Check([]byte(want), []byte("pleaseletmein"))
	if err != nil || !ok1 {
		t.Fatalf("Check(padded) = %v, %v", ok1, err)
	}
	ok2, err := Check([]byte(stripped), []byte("pleaseletmein"))
	if err != nil || !ok2 {
		t.Fatalf("Check(unpadded) = %v, %v", ok2, err)
	}
}

func TestCheckWrongPassword(t *testing.T) {
	record, err := GenerateWithSalt([]byte("correct horse"), []byte("battery staple!!"), 4, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	ok, err := Check(record, []byte("x correct horse"))
	if err != nil {
		t.Fatalf("Check: unexpected error %v", err)
	}
	if ok {
		t.Fatal("Check matched a wrong password")
	}
}

func TestGenerateRandomSaltDiffers(t *testing.T) {
	m1, err := Config{Params: Params{N: 2, R: 1, P: 1}}.Generate([]byte("pass"), nil)
	if err != nil {
		t.Fatal(err)
	}
	m2, err := Config{Params: Params{N: 2, R: 1, P: 1}}.Generate([]byte("pass"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(m1, m2) {
		t.Fatal("two random-salt records were identical")
	}
	for _, m := range [][]byte{m1, m2} {
		ok, err := Check(m, []byte("pass"))
		if err != nil || !ok {
			t.Fatalf("Check(%s) = %v, %v", m, ok, err)
		}
	}
}

func TestSaltLengthBounds(t *testing.T) {
	cfg := Config{Params: Params{N: 2, R: 1, P: 1}}
	if _, err := cfg.Generate([]byte("pass"), []byte{}); !errors.Is(err, scryptmcf.ErrInvalidParams) {
		t.Errorf("salt len 0: err=%v, want ErrInvalidParams", err)
	}
	if _, err := cfg.Generate([]byte("pass"), bytes.Repeat([]byte("a"), 17)); !errors.Is(err, scryptmcf.ErrInvalidParams) {
		t.Errorf("salt len 17: err=%v, want ErrInvalidParams", err)
	}
	if _, err := cfg.Generate([]byte("pass"), bytes.Repeat([]byte("a"), 16)); err != nil {
		t.Errorf("salt len 16: unexpected error %v", err)
	}
}

func TestRPBoundsMCF(t *testing.T) {
	if _, err := (Config{Params: Params{N: 2, R: 256, P: 1}}).Generate([]byte("pass"), []byte("saltsalt")); !errors.Is(err, scryptmcf.ErrInvalidParams) {
		t.Errorf("r=256: err=%v, want ErrInvalidParams", err)
	}
	if _, err := (Config{Params: Params{N: 2, R: 1, P: 256}}).Generate([]byte("pass"), []byte("saltsalt")); !errors.Is(err, scryptmcf.ErrInvalidParams) {
		t.Errorf("p=256: err=%v, want ErrInvalidParams", err)
	}
}

func TestCheckMalformed(t *testing.T) {
	cases := []string{
		"",
		"$s1$ffffffff$aaaa$bbbb", // 8 hex digits, not 6
		"$s1$0a0810",             // missing fields
		"not-an-mcf-record",
	}
	for _, c := range cases {
		if _, err := Check([]byte(c), []byte("password")); !errors.Is(err, scryptmcf.ErrInvalidFormat) {
			t.Errorf("Check(%q): err=%v, want ErrInvalidFormat", c, err)
		}
	}
}

func TestNeedsRehash(t *testing.T) {
	weak, err := GenerateWithSalt([]byte("pass"), []byte("saltsalt"), 2, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	stronger := Params{N: 4, R: 1, P: 1}
	needs, err := NeedsRehash(weak, stronger)
	if err != nil {
		t.Fatal(err)
	}
	if !needs {
		t.Fatal("expected a hash stored at N=2 to need a rehash against N=4")
	}

	same, err := NeedsRehash(weak, Params{N: 2, R: 1, P: 1})
	if err != nil {
		t.Fatal(err)
	}
	if same {
		t.Fatal("expected a hash stored at N=2 to not need a rehash against the same N")
	}
}
