package feed

import "elenco/internal/models"

type Tab string

const (
	TabFeed    Tab = "feed"
	TabGrid    Tab = "grid"
	TabMyPosts Tab = "my_posts"
)

func ParseTab(s string) Tab {
	switch Tab(s) {
	case TabGrid, TabMyPosts:
		return Tab(s)
	default:
		return TabFeed
	}
}

// Filter selects the posts shown on a tab, keeping list order.
func Filter(posts []models.Post, tab Tab, viewer models.User) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		switch tab {
		case TabGrid:
			if p.MediaType == models.MediaNone {
				continue
			}
		case TabMyPosts:
			if p.Author.ID != viewer.ID {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func Find(posts []models.Post, id string) (models.Post, bool) {
	if idx := indexOf(posts, id); idx >= 0 {
		return posts[idx], true
	}
	return models.Post{}, false
}

func TotalReactions(p models.Post) int {
	total := 0
	for _, n := range p.Reactions {
		total += n
	}
	return total
}
