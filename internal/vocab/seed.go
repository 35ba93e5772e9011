package vocab

// Seed returns the starter corpus written on first run when no
// vocabulary file exists yet.
func Seed() *Vocabulary {
	v := New()
	v.Meta.TargetLangs = []string{"en"}
	v.Topics = []Topic{
		{ID: "grundlagen", Name: "Grundlagen", Lang: "en"},
		{ID: "reisen", Name: "Reisen", Lang: "en"},
	}
	v.Cards = []Card{
		{ID: "grundlagen_001_en", Lang: "en", Topic: "grundlagen", Front: "Haus", Back: "house"},
		{ID: "grundlagen_002_en", Lang: "en", Topic: "grundlagen", Front: "Hund", Back: "dog"},
		{ID: "grundlagen_003_en", Lang: "en", Topic: "grundlagen", Front: "Katze", Back: "cat"},
		{ID: "grundlagen_004_en", Lang: "en", Topic: "grundlagen", Front: "Wasser", Back: "water"},
		{ID: "reisen_001_en", Lang: "en", Topic: "reisen", Front: "der Koffer", Back: "the suitcase"},
		{ID: "reisen_002_en", Lang: "en", Topic: "reisen", Front: "der Bahnhof", Back: "the train station"},
		{ID: "reisen_003_en", Lang: "en", Topic: "reisen", Front: "die Fahrkarte", Back: "the ticket"},
	}
	return v
}
