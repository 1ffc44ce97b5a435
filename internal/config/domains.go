package config

// DefaultVideoDomains returns the curated list of video platforms. A page on
// any of these hosts is classified as a video regardless of its title.
func DefaultVideoDomains() []string {
	return []string{
		// Mainstream platforms
		"youtube.com",
		"youtu.be",
		"vimeo.com",
		"dailymotion.com",
		"twitch.tv",

		// Social video
		"facebook.com",
		"bilibili.com",

		// Streaming services
		"netflix.com",
		"primevideo.com",
		"hotstar.com",
		"zee5.com",
		"mxplayer.in",
		"sonyliv.com",
		"disneyplus.com",
		"hulu.com",
		"hbomax.com",
		"crunchyroll.com",
	}
}

// DefaultSearchEngineDomains returns search engines whose results pages are
// suppressed: a search query is noise, not content.
func DefaultSearchEngineDomains() []string {
	return []string{
		"google.com",
		"bing.com",
		"duckduckgo.com",
		"search.yahoo.com",
		"search.brave.com",
		"startpage.com",
		"ecosia.org",
		"baidu.com",
		"yandex.com",
	}
}
