package feeds

// DefaultSources returns the built-in source catalog. Reliability weights
// are editorial judgement, not measurements; adjust in config overrides
// rather than here.
func DefaultSources() []Source {
	return []Source{
		// International wires and broadcasters.
		{Name: "BBC News", URL: "https://feeds.bbci.co.uk/news/rss.xml", Kind: KindFeed, Category: "general", Reliability: 0.95},
		{Name: "Reuters", URL: "https://feeds.reuters.com/reuters/topNews", Kind: KindFeed, Category: "general", Reliability: 0.95},
		{Name: "The Guardian", URL: "https://www.theguardian.com/world/rss", Kind: KindFeed, Category: "general", Reliability: 0.9},
		{Name: "Al Jazeera", URL: "https://www.aljazeera.com/xml/rss/all.xml", Kind: KindFeed, Category: "general", Reliability: 0.85},

		// Technology.
		{Name: "TechCrunch", URL: "https://techcrunch.com/feed/", Kind: KindFeed, Category: "technology", Reliability: 0.85},
		{Name: "Ars Technica", URL: "https://feeds.arstechnica.com/arstechnica/index", Kind: KindFeed, Category: "technology", Reliability: 0.9},
		{Name: "The Verge", URL: "https://www.theverge.com/rss/index.xml", Kind: KindFeed, Category: "technology", Reliability: 0.8},
		{Name: "Wired", URL: "https://www.wired.com/feed/rss", Kind: KindFeed, Category: "technology", Reliability: 0.85},

		// Business.
		{Name: "Financial Express", URL: "https://www.financialexpress.com/feed/", Kind: KindFeed, Category: "business", Reliability: 0.8, Locale: true},
		{Name: "Economic Times", URL: "https://economictimes.indiatimes.com/rssfeedstopstories.cms", Kind: KindFeed, Category: "business", Reliability: 0.85, Locale: true},
		{Name: "Business Standard", URL: "https://www.business-standard.com/rss/latest.rss", Kind: KindFeed, Category: "business", Reliability: 0.8, Locale: true},

		// Locale-focused general coverage.
		{Name: "The Hindu", URL: "https://www.thehindu.com/news/national/feeder/default.rss", Kind: KindFeed, Category: "general", Reliability: 0.9, Locale: true},
		{Name: "Times of India", URL: "https://timesofindia.indiatimes.com/rssfeedstopstories.cms", Kind: KindFeed, Category: "general", Reliability: 0.75, Locale: true},
		{Name: "NDTV", URL: "https://feeds.feedburner.com/ndtvnews-top-stories", Kind: KindFeed, Category: "general", Reliability: 0.8, Locale: true},
		{Name: "Indian Express", URL: "https://indianexpress.com/feed/", Kind: KindFeed, Category: "general", Reliability: 0.85, Locale: true},
		{Name: "India Today", URL: "https://www.indiatoday.in/rss/home", Kind: KindFeed, Category: "general", Reliability: 0.75, Locale: true},

		// Science and health.
		{Name: "Science Daily", URL: "https://www.sciencedaily.com/rss/all.xml", Kind: KindFeed, Category: "science", Reliability: 0.85},
		{Name: "Medical News Today", URL: "https://www.medicalnewstoday.com/rss", Kind: KindFeed, Category: "health", Reliability: 0.8},

		// Sports and entertainment.
		{Name: "ESPN Cricinfo", URL: "https://www.espncricinfo.com/rss/content/story/feeds/0.xml", Kind: KindFeed, Category: "sports", Reliability: 0.85, Locale: true},
		{Name: "BBC Sport", URL: "https://feeds.bbci.co.uk/sport/rss.xml", Kind: KindFeed, Category: "sports", Reliability: 0.9},
		{Name: "Variety", URL: "https://variety.com/feed/", Kind: KindFeed, Category: "entertainment", Reliability: 0.75},
	}
}

// APISources returns the REST API sources unlocked by configured keys.
// A missing key simply omits that source from the catalog.
func APISources(newsAPIKey, gnewsAPIKey string) []Source {
	var out []Source
	if newsAPIKey != "" {
		out = append(out, Source{
			Name:        "NewsAPI",
			URL:         "https://newsapi.org/v2/top-headlines?country=in&pageSize=15&apiKey=" + newsAPIKey,
			Kind:        KindAPI,
			Category:    "general",
			Reliability: 0.85,
			Locale:      true,
		})
	}
	if gnewsAPIKey != "" {
		out = append(out, Source{
			Name:        "GNews",
			URL:         "https://gnews.io/api/v4/top-headlines?country=in&max=15&token=" + gnewsAPIKey,
			Kind:        KindAPI,
			Category:    "general",
			Reliability: 0.8,
			Locale:      true,
		})
	}
	return out
}
