package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Kind discriminates the variants carried by Item
type Kind int

const (
	KindStandalone Kind = iota
	KindSubItem
	KindCollection
)

func (k Kind) String() string {
	switch k {
	case KindStandalone:
		return "standalone"
	case KindSubItem:
		return "subitem"
	case KindCollection:
		return "collection"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Subtitle describes one subtitle file attached to a playable item
type Subtitle struct {
	Language     string `json:"language"`
	LanguageCode string `json:"language_code"`
	Filename     string `json:"filename"`
}

// Standalone is a single playable title with no sub-structure (a movie)
type Standalone struct {
	ID        string
	Title     string
	Year      string
	Length    string
	Subtitles []Subtitle
}

// SubItem is one playable unit inside a collection (an episode)
type SubItem struct {
	ID        string
	Season    int
	Episode   int
	Title     string
	Subtitles []Subtitle
}

// Season groups the sub-items of a collection
type Season struct {
	Number   int
	Episodes []SubItem
}

// Collection is a title made of ordered seasons (a series)
type Collection struct {
	ID            string
	Title         string
	YearRange     string
	TotalEpisodes int
	Seasons       []Season
}

// Item is a tagged union over the three catalog entry shapes.
// Exactly one of the pointer fields is set, matching Kind.
type Item struct {
	Kind       Kind
	Standalone *Standalone
	SubItem    *SubItem
	Collection *Collection
}

// Page is one list or search response
type Page struct {
	Items []Item
	Total int
}

// FromStandalone wraps a movie as an Item
func FromStandalone(s *Standalone) Item {
	return Item{Kind: KindStandalone, Standalone: s}
}

// FromSubItem wraps an episode as an Item
func FromSubItem(s *SubItem) Item {
	return Item{Kind: KindSubItem, SubItem: s}
}

// FromCollection wraps a series as an Item
func FromCollection(c *Collection) Item {
	return Item{Kind: KindCollection, Collection: c}
}

// ID returns the identifier of whichever variant is set
func (i Item) ID() string {
	switch i.Kind {
	case KindStandalone:
		if i.Standalone != nil {
			return i.Standalone.ID
		}
	case KindSubItem:
		if i.SubItem != nil {
			return i.SubItem.ID
		}
	case KindCollection:
		if i.Collection != nil {
			return i.Collection.ID
		}
	}
	return ""
}

// Title returns a display title. Untitled episodes fall back to "Episode N".
func (i Item) Title() string {
	switch i.Kind {
	case KindStandalone:
		if i.Standalone != nil {
			return i.Standalone.Title
		}
	case KindSubItem:
		if i.SubItem != nil {
			if i.SubItem.Title != "" {
				return i.SubItem.Title
			}
			return fmt.Sprintf("Episode %d", i.SubItem.Episode)
		}
	case KindCollection:
		if i.Collection != nil {
			return i.Collection.Title
		}
	}
	return ""
}

// Subtitles returns the subtitle tracks of a playable item, nil for collections
func (i Item) Subtitles() []Subtitle {
	switch i.Kind {
	case KindStandalone:
		if i.Standalone != nil {
			return i.Standalone.Subtitles
		}
	case KindSubItem:
		if i.SubItem != nil {
			return i.SubItem.Subtitles
		}
	}
	return nil
}

// Playable reports whether the item can be handed to a player
func (i Item) Playable() bool {
	return i.Kind == KindStandalone || i.Kind == KindSubItem
}

// Label is the short season/episode marker of a sub-item, e.g. "S01E03"
func (s SubItem) Label() string {
	return fmt.Sprintf("S%02dE%02d", s.Season, s.Episode)
}

// Flatten lists the sub-items of a collection ordered by season number, then
// by episode index. Entries with equal keys keep their given order.
func Flatten(c *Collection) []Item {
	if c == nil {
		return nil
	}
	var items []Item
	for si := range c.Seasons {
		season := &c.Seasons[si]
		for ei := range season.Episodes {
			items = append(items, FromSubItem(&season.Episodes[ei]))
		}
	}
	slices.SortStableFunc(items, func(a, b Item) int {
		if d := cmp.Compare(a.SubItem.Season, b.SubItem.Season); d != 0 {
			return d
		}
		return cmp.Compare(a.SubItem.Episode, b.SubItem.Episode)
	})
	return items
}

// EpisodeCount returns the number of sub-items across all seasons
func (c *Collection) EpisodeCount() int {
	n := 0
	for _, s := range c.Seasons {
		n += len(s.Episodes)
	}
	return n
}

// MatchTitle reports whether title contains query, ignoring case
func MatchTitle(title, query string) bool {
	return strings.Contains(strings.ToLower(title), strings.ToLower(query))
}
