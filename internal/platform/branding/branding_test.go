package branding

import (
	"strings"
	"testing"
)

func TestNamespaceIsMetricSafe(t *testing.T) {
	if AppName == "" {
		t.Fatal("expected AppName to be set")
	}
	if Namespace != strings.ToLower(Namespace) || strings.ContainsAny(Namespace, " -.") {
		t.Fatalf("Namespace %q must be a lowercase Prometheus-safe token", Namespace)
	}
}
