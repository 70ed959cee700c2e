package stdimg

import "testing"

func TestParseColorNamedIsCaseInsensitive(t *testing.T) {
	c, err := ParseColor("CornflowerBlue")
	if err != nil {
		t.Fatalf("ParseColor failed: %v", err)
	}
	if c.R != 0x64 || c.G != 0x95 || c.B != 0xed {
		t.Fatalf("expected cornflowerblue rgb, got %+v", c)
	}
}

func TestParseColorShortHex(t *testing.T) {
	c, err := ParseColor("#0f0")
	if err != nil {
		t.Fatalf("ParseColor failed: %v", err)
	}
	if c.R != 0 || c.G != 0xff || c.B != 0 || c.A != 0xff {
		t.Fatalf("expected pure green, got %+v", c)
	}
}

func TestParseColorRejectsUnknownName(t *testing.T) {
	if _, err := ParseColor("notacolor"); err == nil {
		t.Fatal("expected error for unknown color name")
	}
}
