package payment

import (
	"testing"
)

func TestSignDeterministic(t *testing.T) {
	c := NewClientWith("http://gateway.test", "key", "secret")

	a := c.Sign("order_1", "pay_1")
	b := c.Sign("order_1", "pay_1")
	if a != b {
		t.Errorf("signature not deterministic: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}

func TestVerifySignature(t *testing.T) {
	c := NewClientWith("http://gateway.test", "key", "secret")
	sig := c.Sign("order_1", "pay_1")

	if !c.VerifySignature("order_1", "pay_1", sig) {
		t.Error("genuine signature rejected")
	}

	// Any single-field mutation breaks the signature.
	if c.VerifySignature("order_2", "pay_1", sig) {
		t.Error("signature accepted for wrong order")
	}
	if c.VerifySignature("order_1", "pay_2", sig) {
		t.Error("signature accepted for wrong payment")
	}
	if c.VerifySignature("order_1", "pay_1", sig[:63]+"x") {
		t.Error("mutated signature accepted")
	}
	if c.VerifySignature("order_1", "pay_1", "") {
		t.Error("empty signature accepted")
	}
}

func TestVerifySignatureDifferentSecret(t *testing.T) {
	sig := NewClientWith("", "key", "secret-a").Sign("order_1", "pay_1")
	if NewClientWith("", "key", "secret-b").VerifySignature("order_1", "pay_1", sig) {
		t.Error("signature from another secret accepted")
	}
}

func TestSignSeparatorMatters(t *testing.T) {
	c := NewClientWith("", "key", "secret")
	// "ab"+"c" and "a"+"bc" must not collide thanks to the separator.
	if c.Sign("ab", "c") == c.Sign("a", "bc") {
		t.Error("field boundary not preserved in signature input")
	}
}
