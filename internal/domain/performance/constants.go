package performance

const ReviewsKey = "reviews"

const (
	MinRating = 1
	MaxRating = 5
)
