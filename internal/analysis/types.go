package analysis

// Report is the top-level structure for the listening report.
type Report struct {
	Metadata     ReportMetadata   `yaml:"metadata"`
	HoursPerYear []YearHours      `yaml:"hours_per_year"`
	TopArtists   []ArtistHours    `yaml:"top_artists"`
	ArtistRanks  []ArtistYearRank `yaml:"artist_ranks"`
	TopTracks    []EnrichedTrack  `yaml:"top_tracks"`
	TopPodcasts  []ShowHours      `yaml:"top_podcasts"`
	MostReplayed *ShowReplays     `yaml:"most_replayed,omitempty"`
}

type ReportMetadata struct {
	GeneratedDate string `yaml:"generated_date"`
	FirstDay      string `yaml:"first_day,omitempty"`
	LastDay       string `yaml:"last_day,omitempty"`
	TrackPlays    int64  `yaml:"track_plays"`
	EpisodePlays  int64  `yaml:"episode_plays"`
	Enriched      bool   `yaml:"enriched"`
}

type YearHours struct {
	Year     string  `yaml:"year"`
	Category string  `yaml:"category"`
	Hours    float64 `yaml:"hours"`
}

type ArtistHours struct {
	Artist string  `yaml:"artist"`
	Hours  float64 `yaml:"hours"`
}

// ArtistYearRank is an artist's position within one year, by hours played.
// Ranks within a year are a dense 1..k permutation.
type ArtistYearRank struct {
	Year   string  `yaml:"year"`
	Artist string  `yaml:"artist"`
	Hours  float64 `yaml:"hours"`
	Rank   int     `yaml:"rank"`
}

type EnrichedTrack struct {
	TrackID    string `yaml:"track_id,omitempty"`
	Track      string `yaml:"track"`
	Artist     string `yaml:"artist"`
	PlayCount  int64  `yaml:"play_count"`
	Popularity *int   `yaml:"popularity,omitempty"`
	Explicit   *bool  `yaml:"explicit,omitempty"`
}

type ShowHours struct {
	Show  string  `yaml:"show"`
	Hours float64 `yaml:"hours"`
}

type ShowReplays struct {
	Show     string           `yaml:"show"`
	Episodes []EpisodeReplays `yaml:"episodes"`
}

// EpisodeReplays counts the distinct calendar days an episode was listened
// to for at least the replay threshold.
type EpisodeReplays struct {
	Episode string `yaml:"episode"`
	Days    int    `yaml:"days"`
}

// DailyActivity is one calendar day of listening, zero-filled days included.
type DailyActivity struct {
	Date    string  `yaml:"date"`
	Minutes float64 `yaml:"minutes"`
}
