package oic

import "testing"

func TestDeriveIntegrationID(t *testing.T) {
	cases := map[string]string{
		// Already in CODE|VERSION form: extension stripped, rest untouched.
		"ORDER|01.02.0000.iar":   "ORDER|01.02.0000",
		"HELLO_WORLD|1.0.iar":    "HELLO_WORLD|1.0",
		"ORDER_SYNC_1_2_3.iar":   "ORDER_SYNC|1.2.3",
		"PriceFeed-v2-0-1.iar":   "PriceFeed|2.0.1",
		"Billing.12.0.iar":       "Billing|12.0",
		"INVOICE_FEED_V1_0.iar":  "INVOICE_FEED|1.0",
		"NoVersionHere.iar":      "NoVersionHere",
		"customer-sync.car":      "customer-sync",
		"ProjectExport_2_0.car":  "ProjectExport|2.0",
		"plain-name-no-ext":      "plain-name-no-ext",
		"TOO_MANY_1_2_3_4_5.iar": "TOO_MANY_1|2.3.4.5",
	}
	for in, want := range cases {
		if got := DeriveIntegrationID(in); got != want {
			t.Fatalf("DeriveIntegrationID(%q)=%q want=%q", in, got, want)
		}
	}
}

func TestStripArchiveExt(t *testing.T) {
	if got := stripArchiveExt("a.iar"); got != "a" {
		t.Fatalf("unexpected: %s", got)
	}
	if got := stripArchiveExt("b.car"); got != "b" {
		t.Fatalf("unexpected: %s", got)
	}
	if got := stripArchiveExt("c.zip"); got != "c.zip" {
		t.Fatalf("unknown extensions must stay: %s", got)
	}
}
