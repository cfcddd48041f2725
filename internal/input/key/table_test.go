package key

import "testing"

func TestClassify(t *testing.T) {
	tbl := NewTable(SpecialChars{Erase: 0x7f, Kill: '\b', WordErase: 'ぬ'}, nil)
	tests := []struct {
		ch   rune
		want Value
	}{
		{'\r', CR},
		{'\033', Escape},
		{'0', Zero},
		{'a', NotUsed},
		{0x7f, VErase},
		{'\b', VKill},
		{'\026', VLNext},
		{'\021', VLNext},
		{'ぬ', VWErase},
		{'ね', NotUsed},
		{NotDigit, NotUsed},
	}
	for _, tt := range tests {
		if got := tbl.Classify(tt.ch); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.ch, got, tt.want)
		}
	}
}

func TestSetSpecials(t *testing.T) {
	tbl := NewTable(SpecialChars{EOF: '\004'}, nil)
	if got := tbl.Classify(0x7f); got != NotUsed {
		t.Fatalf("Classify(DEL) = %v before SetSpecials", got)
	}
	tbl.SetSpecials(SpecialChars{Erase: 0x7f})
	if got := tbl.Classify(0x7f); got != VErase {
		t.Errorf("Classify(DEL) = %v, want VErase", got)
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		name string
		opts DisplayOptions
		ch   rune
		want string
	}{
		{"caret", DisplayOptions{}, 0x01, "^A"},
		{"alternate", DisplayOptions{AltNotation: true}, 0x01, "<C-a>"},
		{"escape", DisplayOptions{AltNotation: true}, 0x1b, "<Esc>"},
		{"return", DisplayOptions{AltNotation: true}, '\r', "<Ret>"},
		{"tab keeps caret", DisplayOptions{AltNotation: true}, '\t', "^I"},
		{"delete", DisplayOptions{}, 0x7f, "^?"},
		{"alternate delete", DisplayOptions{AltNotation: true}, 0x7f, "<Del>"},
		{"printable", DisplayOptions{}, 'x', "x"},
		{"wide printable", DisplayOptions{}, '世', "世"},
		{"hex", DisplayOptions{}, 0x80, `\x80`},
		{"octal", DisplayOptions{Octal: true}, 0x80, `\200`},
		{"hex two bytes", DisplayOptions{}, 0x0600, `\x0600`},
		{"noprint", DisplayOptions{NoPrint: "a"}, 'a', `\x61`},
		{"print", DisplayOptions{Print: "\u0080"}, 0x80, "\u0080"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := NewTable(SpecialChars{}, nil)
			tbl.SetDisplay(tt.opts)
			if got := tbl.Name(tt.ch); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.ch, got, tt.want)
			}
			if got, want := tbl.Len(tt.ch), len([]rune(tt.want)); got != want {
				t.Errorf("Len(%q) = %d, want %d", tt.ch, got, want)
			}
		})
	}
}

func TestWidth(t *testing.T) {
	tbl := NewTable(SpecialChars{}, nil)
	if got := tbl.Width('世'); got != 2 {
		t.Errorf("Width(世) = %d, want 2", got)
	}
	if got := tbl.Width(0x01); got != 2 {
		t.Errorf("Width(^A) = %d, want 2", got)
	}
}

func TestASCIIClass(t *testing.T) {
	tbl := NewTable(SpecialChars{}, ASCIIClass{})
	if got := tbl.Name('é'); got != `\xe9` {
		t.Errorf("Name(é) = %q, want \\xe9", got)
	}
	if tbl.Class().IsWord('é') {
		t.Error("ASCIIClass treats é as a word character")
	}
}

func TestString(t *testing.T) {
	tbl := NewTable(SpecialChars{}, nil)
	if got := tbl.String([]rune("a\x1bb")); got != "a^[b" {
		t.Errorf("String() = %q, want a^[b", got)
	}
}
