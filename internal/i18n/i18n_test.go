package i18n

import "testing"

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("EN-gb") != "en" {
		t.Fatalf("expected en for EN-gb")
	}
	if DetectLanguage("fr-FR,fr;q=0.8") != "fr" {
		t.Fatalf("expected fr")
	}
	if DetectLanguage("") != "fr" {
		t.Fatalf("expected default fr")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "required") != "Required" {
		t.Fatalf("expected Required")
	}
	if T("fr", "required") != "Requis" {
		t.Fatalf("expected Requis")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> fallback to fr translation if exists
	if T("es", "required") != "Requis" {
		t.Fatalf("expected fr fallback for es lang")
	}
}

func TestStatusLabels(t *testing.T) {
	tests := []struct{ lang, code, want string }{
		{"fr", "invoice.status.overdue", "En retard"},
		{"fr", "debt.status.partial", "Partiel"},
		{"en", "invoice.status.sent", "Sent"},
		{"fr", "payment.mobile_money", "Mobile Money"},
	}
	for _, tt := range tests {
		if got := T(tt.lang, tt.code); got != tt.want {
			t.Errorf("T(%s, %s) = %q, want %q", tt.lang, tt.code, got, tt.want)
		}
	}
}
