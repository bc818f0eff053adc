package catalog

var builtin = []Category{
	{
		Path:       "/overview",
		Label:      "Overview",
		Title:      "Overview of Quranic Phrases",
		AboutTitle: "About this collection",
		Resource:   "/phrases-overview.json",
		About: `A personal collection of phrases from the Holy Quran, each shown in
Arabic with English, Hindi and Urdu translations.

Every phrase carries its Quranic references. Open a phrase and select a
reference to read the full verse on **quran.com** with three translations.`,
	},
	{
		Path:       "/anonymous",
		Label:      "Anonymous",
		Title:      "Anonymous Quranic Phrases",
		AboutTitle: "About the anonymous phrases",
		Resource:   "/phrases-anonymous.json",
		About: `Verses that left a mark while studying the Quran but do not fit
neatly into the other categories. Some speak of faith and guidance, others
of reflection and mercy.`,
	},
	{
		Path:       "/praises",
		Label:      "Praises",
		Title:      "Praises from the Quran",
		AboutTitle: "About the praises",
		Resource:   "/phrases-praise-0.json",
		About: `Phrases that tell us who Allah is, describing His attributes and names.
They can be recited to glorify Allah before making du'a.`,
	},
	{
		Path:       "/extended-praises",
		Label:      "Extended Praises",
		Title:      "Extended Praises from the Quran",
		AboutTitle: "About the extended praises",
		Resource:   "/phrases-praise-1.json",
		Aliases:    []string{"/info"},
		About: `Verses where Allah describes Himself, sometimes in the first person.
Because of their grammatical form they are read for understanding rather
than recited word for word in personal prayer.`,
	},
	{
		Path:       "/prayers",
		Label:      "Prayers",
		Title:      "Prayers from the Quran",
		AboutTitle: "About Quranic prayers",
		About: `Supplications found in the Quran. This collection has not been
published yet.`,
	},
	{
		Path:       "/99-names",
		Label:      "99 Names",
		Title:      "99 Names of Allah from the Quran",
		AboutTitle: "About the 99 Names",
		Resource:   "/phrases-99-names.json",
		About: `Phrases of the form "And Allah is ..." or "Indeed Allah is ...".
They name a divine attribute and can be said as they appear when praising
Allah before a supplication.`,
	},
}
