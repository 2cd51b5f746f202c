package i18n

import "testing"

func TestGetCatalogFallsBackToEnUS(t *testing.T) {
	cat := GetCatalog("xx-XX")
	if cat.Locale() != "en-US" {
		t.Fatalf("locale = %q, want en-US", cat.Locale())
	}
	cat = GetCatalog("")
	if cat.Locale() != "en-US" {
		t.Fatalf("locale = %q, want en-US", cat.Locale())
	}
}

func TestFormatRendersMetadata(t *testing.T) {
	cat := GetCatalog("en-US")
	got := cat.Format(CodeEventInvalidStatusTransition, map[string]string{
		"FromStatus": "PUBLISHED",
		"ToStatus":   "DRAFT",
	})
	want := "Cannot transition event from PUBLISHED to DRAFT"
	if got != want {
		t.Fatalf("format = %q, want %q", got, want)
	}
}

func TestFormatUnknownCodeReturnsCode(t *testing.T) {
	cat := GetCatalog("en-US")
	if got := cat.Format("NO_SUCH_CODE", nil); got != "NO_SUCH_CODE" {
		t.Fatalf("format = %q, want code echoed", got)
	}
}

func TestFormatNilMetadataRendersEmptyVariables(t *testing.T) {
	cat := GetCatalog("en-US")
	got := cat.Format(CodeEventStatusDisallowsOp, nil)
	want := "Event status  does not allow "
	if got != want {
		t.Fatalf("format = %q, want %q", got, want)
	}
}

func TestRegisterCatalogOverride(t *testing.T) {
	RegisterCatalog("fr-FR", NewCatalog("fr-FR", map[Code]string{
		CodeEventFull: "Cet événement est complet.",
	}))
	cat := GetCatalog("fr-FR")
	if cat.Locale() != "fr-FR" {
		t.Fatalf("locale = %q, want fr-FR", cat.Locale())
	}
	if got := cat.Format(CodeEventFull, nil); got != "Cet événement est complet." {
		t.Fatalf("format = %q", got)
	}
}

func TestEveryMessageHasTemplateSyntaxThatParses(t *testing.T) {
	cat := GetCatalog("en-US")
	for code := range cat.messages {
		got := cat.Format(code, map[string]string{
			"MaxLength": "200",
			"FromStatus": "DRAFT",
			"ToStatus":   "PUBLISHED",
			"Status":     "PUBLISHED",
			"Operation":  "delete",
		})
		if got == "" {
			t.Fatalf("code %s rendered empty message", code)
		}
	}
}
