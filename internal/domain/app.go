package domain

// App is catalog metadata for one application, as returned by the store
// lookup API. Fields other than ID may vary slightly by storefront; the
// first successful fetch wins.
type App struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Developer   string `json:"developer"`
	Rating      string `json:"rating"` // stringified average or 'N/A'
	RatingCount int    `json:"ratingCount"`
	Price       string `json:"price"` // "Free" or "$X.YZ"
	Category    string `json:"category"`
	Description string `json:"description"`
	AppURL      string `json:"appUrl"`
	IconURL     string `json:"iconUrl"`
}

// ExportInfo summarizes one export run. Single-country exports fill
// TotalReviews/Country; multi-country exports fill TotalReviewsFound/
// TargetReviews/CountriesChecked.
type ExportInfo struct {
	TotalReviews      int      `json:"totalReviews,omitempty"`
	TotalReviewsFound int      `json:"totalReviewsFound,omitempty"`
	ExportedReviews   int      `json:"exportedReviews"`
	TargetReviews     int      `json:"targetReviews,omitempty"`
	ExportDate        string   `json:"exportDate,omitempty"`
	Country           string   `json:"country,omitempty"`
	AppID             string   `json:"appId,omitempty"`
	CountriesChecked  []string `json:"countriesChecked,omitempty"`
}

// CollectResult is the write-once aggregate for one app's export.
type CollectResult struct {
	App        App        `json:"app"`
	Reviews    []Review   `json:"reviews"`
	ExportInfo ExportInfo `json:"exportInfo"`
}

// BatchSummary heads a multi-app export document.
type BatchSummary struct {
	TotalApps      int    `json:"totalApps"`
	SuccessfulApps int    `json:"successfulApps"`
	TotalReviews   int    `json:"totalReviews"`
	ExportDate     string `json:"exportDate,omitempty"`
	Country        string `json:"country"`
}

type BatchResult struct {
	Summary BatchSummary `json:"summary"`
	Apps    []App        `json:"apps"`
	Reviews []Review     `json:"reviews"`
}
