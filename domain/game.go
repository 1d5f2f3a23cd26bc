package domain

// Game is one entry of the FreeToGame catalog. Price is only set when a
// simulated price was requested.
type Game struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Thumbnail         string `json:"thumbnail"`
	ShortDescription  string `json:"short_description"`
	GameURL           string `json:"game_url"`
	Genre             string `json:"genre"`
	Platform          string `json:"platform"`
	Publisher         string `json:"publisher"`
	Developer         string `json:"developer"`
	ReleaseDate       string `json:"release_date"`
	FreeToGameProfile string `json:"freetogame_profile_url"`
	Price             *int   `json:"price,omitempty"`
}

type GameScreenshot struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

type GameRequirements struct {
	OS        string `json:"os"`
	Processor string `json:"processor"`
	Memory    string `json:"memory"`
	Graphics  string `json:"graphics"`
	Storage   string `json:"storage"`
}

// GameDetail is the single-game payload of the catalog.
type GameDetail struct {
	Game
	Status              string            `json:"status"`
	Description         string            `json:"description"`
	MinimumRequirements *GameRequirements `json:"minimum_system_requirements,omitempty"`
	Screenshots         []GameScreenshot  `json:"screenshots"`
}

// GameFilter narrows a catalog listing. MaxPrice enables the simulated
// price annotation.
type GameFilter struct {
	Name     string
	About    string
	MaxPrice *int
}
