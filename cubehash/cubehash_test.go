package cubehash

import (
	"encoding/hex"
	"testing"
)

func TestSum256(t *testing.T) {
	hundred := make([]byte, 100)
	for i := range hundred {
		hundred[i] = byte(i)
	}

	tests := []struct {
		in   []byte
		want string
	}{
		{nil, "44c6de3ac6c73c391bf0906cb7482600ec06b216c7c54a2a8688a6a42676577d"},
		{[]byte("abc"), "a220b4bf5023e750c2a34dcd5564a8523d32e17fab6fbe0f18a0b0bf5a65632b"},
		{make([]byte, 32), "e27007aa498dd2100ffc76ce4eff578e6eb89908967186156f065cf6a61f6855"},
		{hundred, "08a14ba3c4e40c67f3545a4a62cd7c3ce0e65757440163cc8bbf2d1b7d643e44"},
	}
	for _, tt := range tests {
		got := Sum256(tt.in)
		if hex.EncodeToString(got[:]) != tt.want {
			t.Fatalf("Sum256(%x): got %x, want %s", tt.in, got, tt.want)
		}
	}
}

func TestSum256DoesNotModifyInput(t *testing.T) {
	in := []byte("0123456789abcdef0123456789abcdef0123")
	cp := append([]byte(nil), in...)
	Sum256(in)
	if string(in) != string(cp) {
		t.Fatal("input modified")
	}
}

func BenchmarkSum256(b *testing.B) {
	in := make([]byte, 32)
	b.SetBytes(32)
	for i := 0; i < b.N; i++ {
		Sum256(in)
	}
}
