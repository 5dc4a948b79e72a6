package domain

// Review is one user-submitted App Store rating/comment. All fields are
// feed-provided strings; absent values are filled with sentinels by the
// normalizer, never left empty.
type Review struct {
	Author  string `json:"author"`
	Rating  string `json:"rating"` // digit '1'-'5' or 'N/A'
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"` // ISO-ish, not guaranteed parseable
	Version string `json:"version"`
	Country string `json:"country,omitempty"`
	AppID   string `json:"appId,omitempty"`
	AppName string `json:"appName,omitempty"`
}

// Key is the dedup identity. The feed provides no stable review id, so
// equality is the exact (author, content, date) tuple with no trimming or
// Unicode normalization.
func (r Review) Key() string {
	return r.Author + "\x1f" + r.Content + "\x1f" + r.Date
}

// ArchivedReview is a review as stored in the archive, with its
// database id and owning app.
type ArchivedReview struct {
	ID       int64  `json:"id"`
	AppID    int64  `json:"appId"`
	SourceID string `json:"sourceId"`
	Author   string `json:"author"`
	Rating   string `json:"rating"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Date     string `json:"date"`
	Version  string `json:"version"`
	Country  string `json:"country,omitempty"`
}

// Comment is the dashboard view of an archived review: content with any
// embedded labeled sub-fields split out.
type Comment struct {
	ID          int64   `json:"id"`
	Author      string  `json:"author"`
	Rating      string  `json:"rating"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Description *string `json:"description"`
	Date        string  `json:"date"`
	Version     string  `json:"version"`
	Country     string  `json:"country,omitempty"`
}
