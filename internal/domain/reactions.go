package domain

// ReactionType is the emoji a reader attaches to an article.
type ReactionType string

const (
	ReactionHeart    ReactionType = "❤️"
	ReactionLaugh    ReactionType = "🤣"
	ReactionAgree    ReactionType = "🤝"
	ReactionFire     ReactionType = "🔥"
	ReactionBookmark ReactionType = "🔖"
)

// ReactionOption pairs an emoji with its display label.
type ReactionOption struct {
	Emoji ReactionType `json:"emoji"`
	Label string       `json:"label"`
}

// AvailableReactions is the fixed palette, in display order.
var AvailableReactions = []ReactionOption{
	{Emoji: ReactionHeart, Label: "いいね"},
	{Emoji: ReactionLaugh, Label: "面白い"},
	{Emoji: ReactionAgree, Label: "わかる"},
	{Emoji: ReactionFire, Label: "すごい"},
	{Emoji: ReactionBookmark, Label: "ブックマーク"},
}

// Valid reports whether t belongs to the palette.
func (t ReactionType) Valid() bool {
	for _, o := range AvailableReactions {
		if o.Emoji == t {
			return true
		}
	}
	return false
}
