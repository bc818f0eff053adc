package phrases

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	verseSiteURL = "https://quran.com"

	// Translation ids understood by the verse site.
	translationSahihInternational = 20  // English
	translationBayanUlQuran       = 158 // Urdu
	translationAzizUlHaq          = 122 // Hindi

	minSurah = 1
	maxSurah = 114
)

var verseTranslations = []int{
	translationSahihInternational,
	translationBayanUlQuran,
	translationAzizUlHaq,
}

// VerseURL returns the verse page for surah:ayah with the English, Urdu and
// Hindi translations pre-selected.
func VerseURL(surah, ayah int) string {
	ids := make([]string, 0, len(verseTranslations))
	for _, id := range verseTranslations {
		ids = append(ids, strconv.Itoa(id))
	}
	return fmt.Sprintf("%s/%d/%d?translations=%s", verseSiteURL, surah, ayah, strings.Join(ids, ","))
}

// URL returns the verse page for the reference.
func (r Reference) URL() string {
	return VerseURL(r.SurahNumber, r.AyahNumber)
}

// Validate checks the surah range. Ayah numbers are only required to be positive.
func (r Reference) Validate() error {
	if r.SurahNumber < minSurah || r.SurahNumber > maxSurah {
		return fmt.Errorf("invalid surah number: %d. Must be between %d and %d", r.SurahNumber, minSurah, maxSurah)
	}
	if r.AyahNumber < 1 {
		return fmt.Errorf("invalid ayah number: %d", r.AyahNumber)
	}
	return nil
}

// ParseReference parses a "surah:ayah" label such as "2:255".
func ParseReference(label string) (Reference, error) {
	surahStr, ayahStr, ok := strings.Cut(strings.TrimSpace(label), ":")
	if !ok {
		return Reference{}, fmt.Errorf("invalid reference format: %q. Expected format: \"surah:ayah\"", label)
	}
	surah, err1 := strconv.Atoi(strings.TrimSpace(surahStr))
	ayah, err2 := strconv.Atoi(strings.TrimSpace(ayahStr))
	if err1 != nil || err2 != nil {
		return Reference{}, fmt.Errorf("invalid reference format: %q. Expected format: \"surah:ayah\"", label)
	}
	ref := Reference{SurahNumber: surah, AyahNumber: ayah}
	if err := ref.Validate(); err != nil {
		return Reference{}, err
	}
	return ref, nil
}
