package model

// Entity is a named MyAnimeList reference (genre, studio, producer).
type Entity struct {
	MalID int    `json:"mal_id"`
	Type  string `json:"type,omitempty"`
	Name  string `json:"name"`
	URL   string `json:"url,omitempty"`
}

// ImageSet holds the URLs for one image encoding.
type ImageSet struct {
	ImageURL      string `json:"image_url"`
	SmallImageURL string `json:"small_image_url,omitempty"`
	LargeImageURL string `json:"large_image_url,omitempty"`
}

// Images groups the encodings Jikan returns for a picture.
type Images struct {
	JPG  ImageSet `json:"jpg"`
	WebP ImageSet `json:"webp"`
}

// Best returns the largest available image URL, preferring JPG.
func (i Images) Best() string {
	for _, u := range []string{i.JPG.LargeImageURL, i.JPG.ImageURL, i.WebP.LargeImageURL, i.WebP.ImageURL} {
		if u != "" {
			return u
		}
	}
	return ""
}

// DateParts is a partially known calendar date.
type DateParts struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Known reports whether every part is set.
func (d DateParts) Known() bool {
	return d.Day > 0 && d.Month > 0 && d.Year > 0
}

// Aired is the airing window of an anime.
type Aired struct {
	From string `json:"from"`
	To   string `json:"to"`
	Prop struct {
		From DateParts `json:"from"`
		To   DateParts `json:"to"`
	} `json:"prop"`
	String string `json:"string"`
}

// Trailer points at a promotional video.
type Trailer struct {
	YoutubeID string `json:"youtube_id"`
	URL       string `json:"url"`
	EmbedURL  string `json:"embed_url"`
}

// Theme lists opening and ending songs.
type Theme struct {
	Openings []string `json:"openings"`
	Endings  []string `json:"endings"`
}

// Link is an external link such as a streaming platform.
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Anime is one catalog entry. List endpoints fill a subset of the fields;
// the /full endpoint fills the rest.
type Anime struct {
	MalID         int     `json:"mal_id"`
	URL           string  `json:"url"`
	Images        Images  `json:"images"`
	Trailer       Trailer `json:"trailer"`
	Title         string  `json:"title"`
	TitleEnglish  string  `json:"title_english"`
	TitleJapanese string  `json:"title_japanese"`
	Type          string  `json:"type"`
	Source        string  `json:"source"`
	Episodes      int     `json:"episodes"`
	Status        string  `json:"status"`
	Airing        bool    `json:"airing"`
	Aired         Aired   `json:"aired"`
	Duration      string  `json:"duration"`
	Rating        string  `json:"rating"`
	Score         float64 `json:"score"`
	ScoredBy      int     `json:"scored_by"`
	Rank          int     `json:"rank"`
	Popularity    int     `json:"popularity"`
	Members       int     `json:"members"`
	Favorites     int     `json:"favorites"`
	Synopsis      string  `json:"synopsis"`
	Background    string  `json:"background"`
	Season        string  `json:"season"`
	Year          int     `json:"year"`
	Broadcast     struct {
		String string `json:"string"`
	} `json:"broadcast"`
	Producers []Entity `json:"producers"`
	Studios   []Entity `json:"studios"`
	Genres    []Entity `json:"genres"`
	Theme     Theme    `json:"theme"`
	Streaming []Link   `json:"streaming"`
}

// PersonRef is the short form of a person embedded in other records.
type PersonRef struct {
	MalID  int    `json:"mal_id"`
	URL    string `json:"url"`
	Images Images `json:"images"`
	Name   string `json:"name"`
}

// CharacterRef is the short form of a character embedded in other records.
type CharacterRef struct {
	MalID  int    `json:"mal_id"`
	URL    string `json:"url"`
	Images Images `json:"images"`
	Name   string `json:"name"`
}

// AnimeRef is the short form of an anime embedded in other records.
type AnimeRef struct {
	MalID  int    `json:"mal_id"`
	URL    string `json:"url"`
	Images Images `json:"images"`
	Title  string `json:"title"`
}

// VoiceActor is a person voicing a character in one language.
type VoiceActor struct {
	Person   PersonRef `json:"person"`
	Language string    `json:"language"`
}

// CharacterRole is a character appearing in an anime.
type CharacterRole struct {
	Character   CharacterRef `json:"character"`
	Role        string       `json:"role"`
	VoiceActors []VoiceActor `json:"voice_actors"`
}

// LeadVoiceActor returns the first listed voice actor, if any.
func (r CharacterRole) LeadVoiceActor() (VoiceActor, bool) {
	if len(r.VoiceActors) == 0 {
		return VoiceActor{}, false
	}
	return r.VoiceActors[0], true
}

// Episode is one episode of an anime.
type Episode struct {
	MalID         int     `json:"mal_id"`
	Title         string  `json:"title"`
	TitleJapanese string  `json:"title_japanese"`
	TitleRomanji  string  `json:"title_romanji"`
	Aired         string  `json:"aired"`
	Score         float64 `json:"score"`
	Filler        bool    `json:"filler"`
	Recap         bool    `json:"recap"`
}

// ScoreVotes is one bucket of the score distribution.
type ScoreVotes struct {
	Score      int     `json:"score"`
	Votes      int     `json:"votes"`
	Percentage float64 `json:"percentage"`
}

// Statistics summarizes list membership and the score distribution.
type Statistics struct {
	Watching    int          `json:"watching"`
	Completed   int          `json:"completed"`
	OnHold      int          `json:"on_hold"`
	Dropped     int          `json:"dropped"`
	PlanToWatch int          `json:"plan_to_watch"`
	Total       int          `json:"total"`
	Scores      []ScoreVotes `json:"scores"`
}

// Character is a character profile.
type Character struct {
	MalID     int      `json:"mal_id"`
	URL       string   `json:"url"`
	Images    Images   `json:"images"`
	Name      string   `json:"name"`
	NameKanji string   `json:"name_kanji"`
	Nicknames []string `json:"nicknames"`
	Favorites int      `json:"favorites"`
	About     string   `json:"about"`
}

// CharacterAnimeRole is an anime a character appears in.
type CharacterAnimeRole struct {
	Role  string   `json:"role"`
	Anime AnimeRef `json:"anime"`
}

// Person is a staff or voice actor profile.
type Person struct {
	MalID          int      `json:"mal_id"`
	URL            string   `json:"url"`
	WebsiteURL     string   `json:"website_url"`
	Images         Images   `json:"images"`
	Name           string   `json:"name"`
	GivenName      string   `json:"given_name"`
	FamilyName     string   `json:"family_name"`
	AlternateNames []string `json:"alternate_names"`
	Birthday       string   `json:"birthday"`
	Favorites      int      `json:"favorites"`
	About          string   `json:"about"`
}

// VoiceRole is a character a person voiced.
type VoiceRole struct {
	Role      string       `json:"role"`
	Anime     AnimeRef     `json:"anime"`
	Character CharacterRef `json:"character"`
}

// Pagination is Jikan's paging envelope.
type Pagination struct {
	LastVisiblePage int  `json:"last_visible_page"`
	HasNextPage     bool `json:"has_next_page"`
	CurrentPage     int  `json:"current_page"`
	Items           struct {
		Count   int `json:"count"`
		Total   int `json:"total"`
		PerPage int `json:"per_page"`
	} `json:"items"`
}

// AnimePage is one page of an anime listing.
type AnimePage struct {
	Items      []Anime
	Pagination Pagination
}

// AnimeDetail aggregates everything the anime page shows.
type AnimeDetail struct {
	Anime      Anime
	Characters []CharacterRole
	Episodes   []Episode
	Statistics *Statistics
}

// CharacterDetail aggregates everything the character page shows.
type CharacterDetail struct {
	Character Character
	Anime     []CharacterAnimeRole
	Voices    []VoiceActor
}

// PersonDetail aggregates everything the voice actor page shows.
type PersonDetail struct {
	Person Person
	Roles  []VoiceRole
}
