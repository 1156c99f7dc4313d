package fetch

import "testing"

func TestHTMLToTextStripsScriptAndStyle(t *testing.T) {
	input := `<html><head>
<SCRIPT type="text/javascript">
var secret = "do not narrate";
</SCRIPT>
<style>
body { color: red; }
</style>
</head><body><h1>Title</h1><p>First   paragraph.</p>
<p>Second
paragraph.</p></body></html>`

	got := HTMLToText(input)
	want := "Title First paragraph. Second paragraph."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHTMLToTextCollapsesWhitespaceAndTrims(t *testing.T) {
	got := HTMLToText("  <div>  a \t b \n\n c </div>  ")
	if got != "a b c" {
		t.Fatalf("got %q, want %q", got, "a b c")
	}
}

func TestHTMLToTextPlainInputPassesThrough(t *testing.T) {
	got := HTMLToText("no markup here")
	if got != "no markup here" {
		t.Fatalf("got %q", got)
	}
}

func TestHTMLToTextEmptyInput(t *testing.T) {
	if got := HTMLToText(""); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
