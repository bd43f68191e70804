package persist

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestEncodeIsByteArray(t *testing.T) {
	got, err := Encode([]byte{0, 5, 255})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got != "[0,5,255]" {
		t.Fatalf("Encode produced %s", got)
	}
	if empty, err := Encode(nil); err != nil || empty != "[]" {
		t.Fatalf("Encode(nil) = %q, %v", empty, err)
	}
}

func TestDecodeForms(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []byte
	}{
		{"array", "[1,2,3]", []byte{1, 2, 3}},
		{"object", `{"1":2,"0":1,"2":3}`, []byte{1, 2, 3}},
		{"empty array", "[]", []byte{}},
		{"padded", "  [7]\n", []byte{7}},
	}
	for _, tc := range cases {
		got, err := Decode(tc.in)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if !bytes.Equal(got, tc.want) {
			t.Fatalf("%s: got %v, expected %v", tc.name, got, tc.want)
		}
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "null", "[1,2", "[256]", "[-1]", `{"0":1,"2":3}`, `{"0":1,"00":2}`, `{"a":1}`, `"AQID"`} {
		if _, err := Decode(in); !errors.Is(err, ErrFormat) {
			t.Fatalf("Decode(%q) error %v, expected ErrFormat", in, err)
		}
	}
}

func TestAdapterRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemoryStore(), "")
	if a.Key() != DefaultKey {
		t.Fatalf("key %q", a.Key())
	}
	if ok, err := a.Available(ctx); ok || err != nil {
		t.Fatalf("fresh store available=%v err=%v", ok, err)
	}
	dst := []byte{9, 9}
	if ok, err := a.Load(ctx, dst); ok || err != nil {
		t.Fatalf("load without save ok=%v err=%v", ok, err)
	}

	if err := a.Save(ctx, []byte{1, 2}); err != nil {
		t.Fatal(err)
	}
	if ok, _ := a.Available(ctx); !ok {
		t.Fatal("save should make load available")
	}
	ok, err := a.Load(ctx, dst)
	if !ok || err != nil || !bytes.Equal(dst, []byte{1, 2}) {
		t.Fatalf("load ok=%v err=%v dst=%v", ok, err, dst)
	}
}

func TestAdapterLengthMismatchLeavesBoard(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	a := NewAdapter(store, "slot")
	if err := a.Save(ctx, []byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	dst := []byte{7, 7}
	ok, err := a.Load(ctx, dst)
	if ok || !errors.Is(err, ErrLengthMismatch) || !errors.Is(err, ErrFormat) {
		t.Fatalf("ok=%v err=%v, expected length mismatch", ok, err)
	}
	if !bytes.Equal(dst, []byte{7, 7}) {
		t.Fatalf("board changed to %v", dst)
	}

	store.Set(ctx, "slot", "[1,999]")
	if _, err := a.Load(ctx, dst); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
	if !bytes.Equal(dst, []byte{7, 7}) {
		t.Fatalf("board changed to %v", dst)
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	if _, ok, err := s.Get(ctx, DefaultKey); ok || err != nil {
		t.Fatalf("empty store ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, DefaultKey, "[1]"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, DefaultKey, "[2]"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Get(ctx, DefaultKey)
	if !ok || err != nil || v != "[2]" {
		t.Fatalf("get=%q ok=%v err=%v", v, ok, err)
	}

	a := NewAdapter(s, DefaultKey)
	buf := bytes.Repeat([]byte{0xa5}, 512)
	if err := a.Save(ctx, buf); err != nil {
		t.Fatal(err)
	}
	dst := make([]byte, 512)
	if ok, err := a.Load(ctx, dst); !ok || err != nil || !bytes.Equal(dst, buf) {
		t.Fatalf("sqlite round trip ok=%v err=%v", ok, err)
	}
}

func TestNewSQLiteStoreNilDB(t *testing.T) {
	if _, err := NewSQLiteStore(nil); err == nil {
		t.Fatal("expected error for nil DB")
	}
}
