package insights

// SearchRequest is the body of POST /api/v1/search.
type SearchRequest struct {
	Query   string `json:"query" binding:"required"`
	Limit   int    `json:"limit"`
	Channel string `json:"channel"`
}

type MessagesQuery struct {
	Hours int `form:"hours"`
	Limit int `form:"limit"`
}

type TimelineQuery struct {
	Minutes int `form:"minutes"`
}
