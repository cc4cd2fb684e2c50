package domain

// ViewState is the state of the catalog grid
type ViewState string

const (
	ViewStateLoading ViewState = "loading"
	ViewStateLoaded  ViewState = "loaded"
	ViewStateEmpty   ViewState = "empty"
	ViewStateError   ViewState = "error"
)

// User-facing messages for the non-loaded states
const (
	FetchFailureMessage = "Failed to load plants."
	EmptyCatalogMessage = "No plants found."
)

// CatalogView is what the catalog grid renders
type CatalogView struct {
	State          ViewState   `json:"state"`
	Message        string      `json:"message,omitempty"`
	ActiveCategory string      `json:"activeCategory"`
	Plants         []PlantCard `json:"plants"`
}

// CategoryList feeds the category filter bar
type CategoryList struct {
	Categories []string `json:"categories"`
	Active     string   `json:"active"`
}
