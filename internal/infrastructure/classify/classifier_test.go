package classify

import (
	"testing"
)

func TestClassifyByFilename(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}

	cases := map[string]string{
		"invoice_march.pdf":     "Invoice",
		"service_contract.docx": "Contract",
		"quarterly_report.txt":  "Report",
		"bank_statement.pdf":    "Statement",
		"shop_receipt.txt":      "Receipt",
		"holiday_photos.txt":    "Document",
	}
	for filename, want := range cases {
		if got := c.Classify(filename, "").DocType; got != want {
			t.Fatalf("Classify(%q) = %q, want %q", filename, got, want)
		}
	}
}

func TestClassifyFirstRuleWins(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}

	// content matching both invoice and contract keywords resolves by rule
	// order, invoice first
	info := c.Classify("scan.pdf", "This invoice accompanies the signed agreement.")
	if info.DocType != "Invoice" {
		t.Fatalf("expected Invoice by rule order, got %s", info.DocType)
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}

	first := c.Classify("letter.txt", "Dear Ms Hughes,\nFrom: Legal Team\nYours sincerely")
	second := c.Classify("letter.txt", "Dear Ms Hughes,\nFrom: Legal Team\nYours sincerely")
	if first != second {
		t.Fatalf("identical inputs must classify identically: %+v vs %+v", first, second)
	}
}

func TestScanLabels(t *testing.T) {
	content := "From: Accounts Payable\nTo: Widget Co\nRe: outstanding balance"
	issuer, recipient := scanLabels(content)
	if issuer != "Accounts Payable" {
		t.Fatalf("issuer = %q", issuer)
	}
	if recipient != "Widget Co" {
		t.Fatalf("recipient = %q", recipient)
	}
}

func TestScanLabelsDearFallback(t *testing.T) {
	issuer, recipient := scanLabels("Dear Mr Patel,\n\nThank you for your letter.")
	if issuer != "" {
		t.Fatalf("expected no issuer, got %q", issuer)
	}
	if recipient != "Mr Patel" {
		t.Fatalf("recipient = %q", recipient)
	}
}
