package mysql

const upsertAppSQL = `
INSERT INTO apps
  (id, title, developer, rating, rating_count, price, category, description, app_url, icon_url)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title        = VALUES(title),
  developer    = VALUES(developer),
  rating       = VALUES(rating),
  rating_count = VALUES(rating_count),
  price        = VALUES(price),
  category     = VALUES(category),
  description  = VALUES(description),
  app_url      = VALUES(app_url),
  icon_url     = VALUES(icon_url),
  updated_at   = CURRENT_TIMESTAMP
`

const insertReviewsPrefix = "INSERT INTO reviews\n  (app_id, source_id, author, rating, title, content, review_date, version, country)\nVALUES "

// VALUES(col) for broad compatibility; COALESCE keeps the stored value
// when a later upsert carries NULL for a column.
const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  rating      = COALESCE(VALUES(rating), reviews.rating),\n" +
	"  title       = COALESCE(VALUES(title), reviews.title),\n" +
	"  version     = COALESCE(VALUES(version), reviews.version),\n" +
	"  country     = COALESCE(VALUES(country), reviews.country)\n"

const insertMissSQL = `
INSERT INTO ingest_misses (id, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE seen_at = CURRENT_TIMESTAMP
`

const getAppSQL = `
SELECT
  id,
  title,
  developer,
  rating,
  rating_count,
  price,
  category,
  description,
  app_url,
  icon_url
FROM apps
WHERE id = ?
`

const listReviewsSQL = `
SELECT
  id,
  app_id,
  source_id,
  author,
  rating,
  title,
  content,
  review_date,
  version,
  country
FROM reviews
WHERE app_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?
`
