package phrases

import (
	"strings"
	"testing"
)

func TestDecode_PraiseDocument(t *testing.T) {
	coll, err := Decode([]byte(praiseDoc))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if coll.ExportDate != "2024-01-01" || coll.TotalPhrases != 1 || coll.Len() != 1 {
		t.Fatalf("collection = %#v", coll)
	}
	if coll.Phrases[0].ArabicText != "بِسْمِ اللَّهِ" {
		t.Fatalf("ArabicText = %q", coll.Phrases[0].ArabicText)
	}
}

func TestDecode_Malformed(t *testing.T) {
	if _, err := Decode([]byte(`[1,2`)); err == nil {
		t.Fatalf("Decode returned nil error for malformed input")
	}
	if _, err := Decode([]byte(`{"phrases":"nope"}`)); err == nil {
		t.Fatalf("Decode returned nil error for wrong shape")
	}
}

func TestPhrase_HindiPlaceholder(t *testing.T) {
	p := Phrase{HindiText: "  "}
	if got := p.HindiOrPlaceholder(); got != hindiPlaceholder {
		t.Fatalf("HindiOrPlaceholder = %q, want %q", got, hindiPlaceholder)
	}
	p.HindiText = "नाम"
	if got := p.HindiOrPlaceholder(); got != "नाम" {
		t.Fatalf("HindiOrPlaceholder = %q, want नाम", got)
	}
}

func TestPhrase_PlainText(t *testing.T) {
	p := Phrase{
		ArabicText:  "a",
		EnglishText: "e",
		HindiText:   "h",
		UrduText:    "u",
		References:  []Reference{{2, 255}, {3, 18}},
	}
	want := "a\ne\nh\nu\n(2:255, 3:18)"
	if got := p.PlainText(); got != want {
		t.Fatalf("PlainText = %q, want %q", got, want)
	}
}

func TestCollection_CloneIsIndependent(t *testing.T) {
	coll, err := Decode([]byte(praiseDoc))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	dup := coll.Clone()
	dup.Phrases[0].References[0].SurahNumber = 99
	dup.Phrases[0].EnglishText = "changed"
	if coll.Phrases[0].References[0].SurahNumber != 1 || coll.Phrases[0].EnglishText == "changed" {
		t.Fatalf("Clone shares state with original")
	}
	var nilColl *Collection
	if nilColl.Clone() != nil || nilColl.Len() != 0 {
		t.Fatalf("nil collection helpers misbehave")
	}
}

func TestVerseURL(t *testing.T) {
	got := VerseURL(2, 255)
	want := "https://quran.com/2/255?translations=20,158,122"
	if got != want {
		t.Fatalf("VerseURL = %q, want %q", got, want)
	}
	if (Reference{1, 1}).URL() != "https://quran.com/1/1?translations=20,158,122" {
		t.Fatalf("Reference.URL mismatch")
	}
}

func TestParseReference(t *testing.T) {
	cases := []struct {
		in      string
		want    Reference
		wantErr string
	}{
		{"2:255", Reference{2, 255}, ""},
		{" 114:6 ", Reference{114, 6}, ""},
		{"0:1", Reference{}, "invalid surah number"},
		{"115:1", Reference{}, "invalid surah number"},
		{"2-255", Reference{}, "invalid reference format"},
		{"a:b", Reference{}, "invalid reference format"},
		{"2:0", Reference{}, "invalid ayah number"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseReference(tc.in)
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("ParseReference(%q) error = %v, want %q", tc.in, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseReference(%q) returned error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParseReference(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
