package correction

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCorrectDefaults(t *testing.T) {
	c := NewDefault()
	if c.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", c.Len())
	}

	tests := []struct {
		in   string
		want string
	}{
		{"Eu congelo agora.", "Eu paro agora."},
		{"Então tô  congelando.", "Então Eu paro."},
		{"Eles fazem uma abelha para a porta.", "Eles vão direto para a porta."},
		{"Quieres peloar! Sem mim jodas!", "Quer brigar! Não fode comigo!"},
		{"Pode tocar na minha porta", "Fique à vontade."},
		{"Seu véi de puta!", "Seu filho da puta!"},
		{"As garras copulam fundo.", "As garras perfuram fundo."},
		{"Nada para corrigir.", "Nada para corrigir."},
		// bounded: "congelou" is not "congelo"
		{"eu congelou", "eu congelou"},
		// unbounded rules match inside words
		{"xpegar a buzina de alguémx", "xpegar o chifre de alguémx"},
	}

	for _, tt := range tests {
		if got := c.Correct(tt.in); got != tt.want {
			t.Errorf("Correct(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCorrectRulesChain(t *testing.T) {
	// The "em sua mãe" rule runs first and leaves nothing for the longer phrase.
	got := NewDefault().Correct("Ele está colocando o bolo em sua mãe.")
	want := "Ele está colocando o bolo na boca dele."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCorrectAccentBoundary(t *testing.T) {
	c, err := New([]Rule{{Pattern: "mãe", Replacement: "mamãe", WholeWord: true}})
	if err != nil {
		t.Fatal(err)
	}
	got := c.Correct("mãe mãezinha Mãe")
	if want := "mamãe mãezinha mamãe"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	c, err = New([]Rule{{Pattern: "voc", Replacement: "X", WholeWord: true}})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := c.Correct("voc, você"), "X, você"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCorrectReplacementIsLiteral(t *testing.T) {
	c, err := New([]Rule{{Pattern: `(\d+)\s+reais`, Replacement: "R$ $1", WholeWord: true}})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := c.Correct("custa 10 reais"), "custa R$ $1"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCorrectWholeWordBacktracks(t *testing.T) {
	c, err := New([]Rule{{Pattern: `para\s+o|para`, Replacement: "X", WholeWord: true}})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		in   string
		want string
	}{
		{"para o alto", "X alto"},
		{"para os amigos", "X os amigos"}, // "para o" is glued to "s"
		{"paraquedas", "paraquedas"},
		{"PARA O mãe", "X mãe"},
	}
	for _, tt := range tests {
		if got := c.Correct(tt.in); got != tt.want {
			t.Errorf("Correct(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewRejectsBadRules(t *testing.T) {
	if _, err := New([]Rule{{Pattern: "(unclosed"}}); err == nil {
		t.Fatal("expected compile error")
	}
	if _, err := New([]Rule{{Pattern: "  "}}); err == nil {
		t.Fatal("expected empty pattern error")
	}
}

func TestLiteralRule(t *testing.T) {
	r := LiteralRule("cabeça de  ovo?", "careca")
	if r.Pattern != `cabeça\s+de\s+ovo\?` || !r.WholeWord {
		t.Fatalf("unexpected rule %+v", r)
	}
	c, err := New([]Rule{r})
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Correct("Seu Cabeça de ovo?"); got != "Seu careca" {
		t.Fatalf("got %q", got)
	}
}

func TestLoadRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := `rules:
  - pattern: 'o\s+mestre'
    replacement: 'o Mestre'
    whole_word: true
  - wrong: 'cabeça de ovo'
    right: 'careca'
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRulesFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []Rule{
		{Pattern: `o\s+mestre`, Replacement: "o Mestre", WholeWord: true},
		{Pattern: `cabeça\s+de\s+ovo`, Replacement: "careca", WholeWord: true},
	}
	if diff := cmp.Diff(want, rules); diff != "" {
		t.Fatalf("rules diff (-want +got):\n%s", diff)
	}

	out, err := MarshalRules(rules)
	if err != nil {
		t.Fatal(err)
	}
	again, err := ParseRules(out)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(rules, again); diff != "" {
		t.Fatalf("marshal round trip diff:\n%s", diff)
	}
}

func TestParseRulesErrors(t *testing.T) {
	bad := map[string]string{
		"both":    "rules:\n  - pattern: a\n    wrong: b\n",
		"missing": "rules:\n  - replacement: a\n",
		"regex":   "rules:\n  - pattern: '(a'\n",
		"yaml":    "rules: [",
	}
	for name, data := range bad {
		if _, err := ParseRules([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadRulesFileMissing(t *testing.T) {
	if _, err := LoadRulesFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error")
	}
}
