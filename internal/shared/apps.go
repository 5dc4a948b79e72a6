package shared

// DefaultCountries is the storefront fallback order for multi-country
// collection. Iterated front to back until the review target is met.
var DefaultCountries = []string{"us", "gb", "ca", "au", "de", "fr"}

// PopularAppIDs drive the multi-app batch export and the archive ingestor.
var PopularAppIDs = []string{
	"389801252", // Instagram
	"310633997", // WhatsApp
	"544007664", // YouTube
	"835599320", // TikTok
	"324684580", // Spotify
	"284882215", // Facebook
	"333903271", // X
	"284417350", // Snapchat
}
