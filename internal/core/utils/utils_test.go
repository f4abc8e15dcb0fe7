package utils

import "testing"

func TestHashJSON(t *testing.T) {
	type payload struct {
		Sku      string `json:"sku"`
		Quantity int    `json:"quantity"`
	}

	hash := func(p any) string {
		t.Helper()
		h, err := HashJSON(p)
		if err != nil {
			t.Fatalf("HashJSON(%v): %v", p, err)
		}
		return h
	}

	a := hash(payload{Sku: "SKU1", Quantity: 10})
	b := hash(payload{Sku: "SKU1", Quantity: 10})
	c := hash(payload{Sku: "SKU1", Quantity: 11})

	if a != b {
		t.Fatalf("expected equal payloads to hash equally, got %s and %s", a, b)
	}
	if a == c {
		t.Fatal("expected different payloads to hash differently")
	}
	if len(a) != 64 {
		t.Fatalf("expected a hex sha256 digest, got %d chars", len(a))
	}
}

func TestHashJSON_UnencodablePayload(t *testing.T) {
	if _, err := HashJSON(make(chan int)); err == nil {
		t.Fatal("expected an error for a payload json cannot encode")
	}
}
