package feed

const (
	ItemRecipeImport  = "recipe_import"
	ItemCookingReview = "cooking_review"
)

// Entry is the index record held in a user's feed log. It points at an
// activity event and carries nothing else; the log is ordered by
// (CreatedAt desc, ActivityEventID desc) and is unique per event ID.
type Entry struct {
	ActivityEventID int64 `json:"activityEventId"`
	CreatedAt       int64 `json:"createdAt"` // epoch ms
}

// Less reports whether e sorts after o in the feed, i.e. e is older.
func (e Entry) Less(o Entry) bool {
	if e.CreatedAt != o.CreatedAt {
		return e.CreatedAt < o.CreatedAt
	}
	return e.ActivityEventID < o.ActivityEventID
}

type Actor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// RecipeMetadata is the feed-facing recipe snapshot. URL-sourced
// recipes additionally carry the source link and are not viewable
// in-app.
type RecipeMetadata struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Image         string `json:"image"`
	SourceType    string `json:"sourceType"`
	SourceURL     string `json:"sourceUrl,omitempty"`
	SourceDomain  string `json:"sourceDomain,omitempty"`
	ViewableInApp bool   `json:"viewableInApp"`
}

type ReviewContent struct {
	Rating int      `json:"rating"`
	Text   string   `json:"text"`
	Images []string `json:"images"`
}

// Item is the hydrated, display-ready projection of one event. Type
// discriminates the variant: Review is set only for cooking_review.
type Item struct {
	ID           int64          `json:"id"`
	Type         string         `json:"type"`
	Actor        Actor          `json:"actor"`
	CreatedAt    int64          `json:"createdAt"` // epoch ms
	LikeCount    int64          `json:"likeCount"`
	CommentCount int64          `json:"commentCount"`
	IsLiked      bool           `json:"isLiked"`
	Recipe       RecipeMetadata `json:"recipe"`
	Review       *ReviewContent `json:"review,omitempty"`
}
