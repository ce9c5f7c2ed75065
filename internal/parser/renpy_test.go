package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitLines(t *testing.T) {
	got := SplitLines("a\r\nb\n\nc")
	want := []SourceLine{
		{Index: 0, Text: "a", EOL: "\r\n"},
		{Index: 1, Text: "b", EOL: "\n"},
		{Index: 2, Text: "", EOL: "\n"},
		{Index: 3, Text: "c", EOL: ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("SplitLines diff (-want +got):\n%s", diff)
	}
	if SplitLines("") != nil {
		t.Fatal("empty content should have no lines")
	}
	if n := len(SplitLines("x\n")); n != 1 {
		t.Fatalf("trailing newline produced %d lines", n)
	}
}

func line(text string) SourceLine {
	return SourceLine{Text: text, EOL: "\n"}
}

func TestMatchPair(t *testing.T) {
	tests := []struct {
		name      string
		cur, next string
		ok        bool
		want      Pair
	}{
		{
			name: "old new",
			cur:  `    old "Start game"`,
			next: `    new ""`,
			ok:   true,
			want: Pair{Shape: OldNew, Text: "Start game", Indent: "    new "},
		},
		{
			name: "dialogue",
			cur:  `    # e "I require assistance."`,
			next: `    e ""`,
			ok:   true,
			want: Pair{Shape: Dialogue, Text: "I require assistance.", Indent: "    ", Prefix: "e"},
		},
		{
			name: "dialogue with attributes",
			cur:  `    # say happy "Hi"`,
			next: `    say sad ""`,
			ok:   true,
			want: Pair{Shape: Dialogue, Text: "Hi", Indent: "    ", Prefix: "say sad"},
		},
		{
			name: "dialogue keyword mismatch",
			cur:  `    # say "Hi"`,
			next: `    narrate ""`,
		},
		{
			name: "narration",
			cur:  `    # "Hello" extend`,
			next: `    "" extend`,
			ok:   true,
			want: Pair{Shape: Narration, Text: "Hello", Indent: "    ", Trailing: " extend"},
		},
		{
			name: "narration trailing compared stripped",
			cur:  `    # "Hello" nointeract   `,
			next: `    ""   nointeract`,
			ok:   true,
			want: Pair{Shape: Narration, Text: "Hello", Indent: "    ", Trailing: "   nointeract"},
		},
		{
			name: "narration trailing mismatch",
			cur:  `    # "Hello" extend`,
			next: `    "" nointeract`,
		},
		{
			name: "whitespace prefix falls back to narration",
			cur:  `#  "Hello"`,
			next: `   ""`,
			ok:   true,
			want: Pair{Shape: Narration, Text: "Hello", Indent: "   "},
		},
		{
			name: "already translated",
			cur:  `    # e "Hi"`,
			next: `    e "Oi"`,
		},
		{
			name: "unrelated",
			cur:  `translate pb start_1234:`,
			next: ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur, next := line(tt.cur), line(tt.next)
			got, ok := MatchPair(cur, next)
			if ok != tt.ok {
				t.Fatalf("MatchPair ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			tt.want.Original, tt.want.Placeholder = cur, next
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("pair diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPairFormat(t *testing.T) {
	tests := []struct {
		pair Pair
		want string
	}{
		{Pair{Shape: OldNew, Indent: "    new ", Placeholder: SourceLine{EOL: "\n"}}, "    new \"Iniciar\"\n"},
		{Pair{Shape: Dialogue, Indent: "    ", Prefix: "e", Placeholder: SourceLine{EOL: "\r\n"}}, "    e \"Iniciar\"\r\n"},
		{Pair{Shape: Narration, Indent: "  ", Trailing: " extend", Placeholder: SourceLine{EOL: ""}}, "  \"Iniciar\" extend\n"},
	}
	for _, tt := range tests {
		if got := tt.pair.Format("Iniciar"); got != tt.want {
			t.Errorf("%s Format = %q, want %q", tt.pair.Shape, got, tt.want)
		}
	}
}

func TestParseLinesScan(t *testing.T) {
	content := "translate pb start_a:\n" +
		"\n" +
		"    # e \"Hi\"\n" +
		"    e \"\"\n" +
		"    # say \"Bye\"\n" +
		"    narrate \"\"\n" +
		"    # \"Hello\" extend\n" +
		"    \"\" extend\n"

	res := ParseLines(content)
	if len(res.Lines) != 8 {
		t.Fatalf("got %d lines", len(res.Lines))
	}

	var kinds []string
	for _, s := range res.Steps {
		if s.Pair != nil {
			kinds = append(kinds, "pair:"+s.Pair.Shape.String())
		} else {
			kinds = append(kinds, "line")
		}
	}
	want := []string{"line", "line", "pair:dialogue", "line", "line", "pair:narration"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("steps diff (-want +got):\n%s", diff)
	}
	if n := len(res.Pairs()); n != 2 {
		t.Fatalf("Pairs() = %d, want 2", n)
	}
}

func TestParseLinesNoBacktracking(t *testing.T) {
	// The middle line is both a placeholder and a commented line; once the
	// first two lines pair, it is not reused.
	content := "# e \"A\"\ne \"\"\ne \"\"\n"
	res := ParseLines(content)
	if len(res.Steps) != 2 || res.Steps[0].Pair == nil || res.Steps[1].Line == nil {
		t.Fatalf("unexpected steps: %+v", res.Steps)
	}
}

func TestClassify(t *testing.T) {
	tests := map[string]LineKind{
		`    old "Start"`:      OldText,
		`    new ""`:           NewPlaceholder,
		`    # e "Hi"`:         CommentedDialogue,
		`    e ""`:             PlaceholderDialogue,
		`    # "Hi" with fade`: CommentedNarration,
		`    "" with fade`:     PlaceholderNarration,
		`label start:`:         Unrelated,
	}
	for text, want := range tests {
		if got := Classify(text); got != want {
			t.Errorf("Classify(%q) = %s, want %s", text, got, want)
		}
	}
}

func TestUnpairedPlaceholders(t *testing.T) {
	content := "    # e \"Hi\"\n" +
		"    e \"\"\n" +
		"    new \"\"\n" +
		"label start:\n" +
		"    \"\" with fade\n" +
		"    e \"Olá\"\n"
	res := ParseLines(content)

	var got []int
	for _, line := range UnpairedPlaceholders(res) {
		got = append(got, line.Index)
	}
	if diff := cmp.Diff([]int{2, 4}, got); diff != "" {
		t.Fatalf("unpaired lines diff (-want +got):\n%s", diff)
	}
}

func TestRenpyParserParse(t *testing.T) {
	p := NewRenpyParser("")
	if !p.CanParse(".rpy") || p.CanParse(".RPY") || p.CanParse(".txt") {
		t.Fatal("unexpected CanParse result")
	}

	path := filepath.Join(t.TempDir(), "script.rpy")
	if err := os.WriteFile(path, []byte("    old \"Yes\"\r\n    new \"\"\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := p.Parse(path)
	if err != nil {
		t.Fatal(err)
	}
	if res.FilePath != path || len(res.Pairs()) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}

	if _, err := p.Parse(filepath.Join(t.TempDir(), "missing.rpy")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
