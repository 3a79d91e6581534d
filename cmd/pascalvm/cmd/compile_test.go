package cmd

import (
	"strings"
	"testing"
)

// An illegal character is a lexical diagnostic (§4.1), and must be
// reported as such rather than surfacing only once the parser chokes on
// the resulting ILLEGAL token.
func TestCompileToListingReportsIllegalCharacterAsLexPhase(t *testing.T) {
	src := `program Bad;
begin
  writeln(1 @ 2)
end.`

	_, err := compileToListing(src, "bad.pas")
	if err == nil {
		t.Fatalf("expected an error for an illegal character")
	}
	if !strings.Contains(err.Error(), "lexing failed") {
		t.Fatalf("expected a lexing-phase error, got %q", err.Error())
	}
}
