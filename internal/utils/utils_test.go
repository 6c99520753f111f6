package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"rasdfs@gmail.com",
		"rasdfs@piosdf.com",
		"asdfj.jh@pio.sdf.com",
	}
	invalid := []string{
		"asdjfkjsdhf",
		"@asdfjaskh",
		"asdfasdf@",
	}

	for _, v := range valid {
		if !ValidateEmail(v) {
			t.Errorf("Email should be valid: %s", v)
		}
	}

	for _, v := range invalid {
		if ValidateEmail(v) {
			t.Errorf("Email should be invalid: %s", v)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if NormalizeEmail(" Ann@X.Com ") != "ann@x.com" {
		t.Errorf("NormalizeEmail should trim and lowercase")
	}
}

func TestGenToken(t *testing.T) {
	a := GenToken(64)
	b := GenToken(64)
	if a == b {
		t.Errorf("GenToken returned equal tokens: %s", a)
	}
	if len(a) < 64 {
		t.Errorf("GenToken(64) too short: %d chars", len(a))
	}
}

func TestNewInviteToken(t *testing.T) {
	seen := map[string]bool{}
	prev := ""
	for i := 0; i < 1000; i++ {
		tok := NewInviteToken()
		if seen[tok] {
			t.Fatalf("duplicate invite token: %s", tok)
		}
		seen[tok] = true
		if tok < prev {
			t.Fatalf("invite tokens not time-ordered: %s < %s", tok, prev)
		}
		prev = tok
	}
}
