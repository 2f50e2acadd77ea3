package classify

// DefaultTopics returns the built-in topic table. Order is significant:
// score ties resolve to the earlier entry. Keywords are lowercase; the
// classifier lowercases input before matching.
func DefaultTopics() []Topic {
	return []Topic{
		{Name: "technology", Keywords: []string{
			"technology", "tech", "ai", "artificial intelligence", "machine learning",
			"software", "startup", "digital", "cyber", "robot", "smartphone",
			"computer", "internet", "app", "algorithm", "blockchain", "crypto",
			"chip", "semiconductor", "gadget",
		}},
		{Name: "business", Keywords: []string{
			"business", "economy", "market", "stock", "trade", "finance",
			"investment", "company", "profit", "revenue", "gdp", "inflation",
			"bank", "rupee", "merger", "ipo", "shares", "earnings",
		}},
		{Name: "politics", Keywords: []string{
			"politics", "election", "government", "minister", "parliament",
			"policy", "party", "vote", "congress", "bjp", "political",
			"democracy", "bill", "legislation", "campaign", "coalition",
		}},
		{Name: "sports", Keywords: []string{
			"sports", "cricket", "football", "hockey", "olympics", "ipl",
			"match", "tournament", "player", "team", "championship", "score",
			"wicket", "goal", "medal", "league",
		}},
		{Name: "health", Keywords: []string{
			"health", "medical", "hospital", "doctor", "vaccine", "disease",
			"treatment", "medicine", "covid", "wellness", "patient", "drug",
			"outbreak", "nutrition", "mental health",
		}},
		{Name: "science", Keywords: []string{
			"science", "research", "study", "scientist", "discovery", "space",
			"isro", "nasa", "climate", "experiment", "physics", "satellite",
			"telescope", "quantum", "genome",
		}},
		{Name: "entertainment", Keywords: []string{
			"entertainment", "movie", "film", "bollywood", "actor", "actress",
			"music", "celebrity", "show", "series", "box office", "trailer",
			"album", "concert", "streaming",
		}},
		{Name: "education", Keywords: []string{
			"education", "school", "university", "student", "exam", "college",
			"degree", "learning", "teacher", "curriculum", "admission",
			"scholarship",
		}},
	}
}
