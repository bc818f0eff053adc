package phrases

import (
	"encoding/json"
	"fmt"
	"strings"
)

const hindiPlaceholder = "Translation not available"

// Collection mirrors a phrase document such as /phrases-praise-0.json.
type Collection struct {
	ExportDate   string   `json:"exportDate"`
	TotalPhrases int      `json:"totalPhrases"`
	Phrases      []Phrase `json:"phrases"`
}

// Phrase is one multilingual excerpt with the verses it comes from.
type Phrase struct {
	ArabicText  string      `json:"arabicText"`
	EnglishText string      `json:"englishText"`
	HindiText   string      `json:"hindiText"`
	UrduText    string      `json:"urduText"`
	References  []Reference `json:"references"`
}

// Reference locates a verse as surah:ayah.
type Reference struct {
	SurahNumber int `json:"surahNumber"`
	AyahNumber  int `json:"ayahNumber"`
}

// String formats the reference the way badges display it, e.g. "2:255".
func (r Reference) String() string {
	return fmt.Sprintf("%d:%d", r.SurahNumber, r.AyahNumber)
}

// HindiOrPlaceholder returns the Hindi text, or a placeholder when the
// document has none.
func (p Phrase) HindiOrPlaceholder() string {
	if strings.TrimSpace(p.HindiText) == "" {
		return hindiPlaceholder
	}
	return p.HindiText
}

// ReferenceLabels formats every reference of the phrase.
func (p Phrase) ReferenceLabels() []string {
	out := make([]string, 0, len(p.References))
	for _, ref := range p.References {
		out = append(out, ref.String())
	}
	return out
}

// PlainText joins the four texts and references, one per line.
func (p Phrase) PlainText() string {
	lines := []string{
		p.ArabicText,
		p.EnglishText,
		p.HindiOrPlaceholder(),
		p.UrduText,
	}
	if refs := p.ReferenceLabels(); len(refs) > 0 {
		lines = append(lines, "("+strings.Join(refs, ", ")+")")
	}
	return strings.Join(lines, "\n")
}

// Len reports the number of phrases, tolerating a nil collection.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Phrases)
}

// Decode parses a phrase document. Unknown fields are ignored; a body that is
// not a JSON object of the expected shape is an error.
func Decode(data []byte) (*Collection, error) {
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode phrases: %w", err)
	}
	return &c, nil
}

// Clone returns a deep copy so callers cannot mutate shared state.
func (c *Collection) Clone() *Collection {
	if c == nil {
		return nil
	}
	dup := *c
	dup.Phrases = make([]Phrase, len(c.Phrases))
	for i, p := range c.Phrases {
		dup.Phrases[i] = p
		dup.Phrases[i].References = append([]Reference(nil), p.References...)
	}
	return &dup
}
