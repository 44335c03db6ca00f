package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/justchokingaround/reel/internal/catalog"
	"github.com/justchokingaround/reel/internal/nav"
	"github.com/justchokingaround/reel/internal/tui/common"
	"github.com/justchokingaround/reel/internal/tui/styles"
	"github.com/justchokingaround/reel/internal/tui/utils"
)

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	width := a.width
	if width == 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(a.titleView())
	b.WriteString("\n")
	b.WriteString(a.tabsView())
	b.WriteString("\n\n")
	b.WriteString(a.search.View())
	b.WriteString("\n\n")

	a.viewport.Width = width
	a.viewport.Height = a.bodyHeight()
	a.viewport.SetContent(strings.Join(a.bodyLines(width), "\n"))
	if a.visible != nav.RegionPlayer {
		a.viewport.SetYOffset(a.offsets[a.visible])
	} else {
		a.viewport.SetYOffset(0)
	}
	b.WriteString(a.viewport.View())
	b.WriteString("\n")
	b.WriteString(a.statusView(width))
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render(a.help.View(a.keys)))
	return b.String()
}

func (a *App) titleView() string {
	title := styles.TitleStyle.Render("reel")
	if col := a.nav.State().Collection; col != nil && a.visible != nav.RegionMovies {
		title += " " + styles.SubtitleStyle.Render(col.Title)
	}
	if l := a.nav.List(a.visible); l != nil && l.Status() == nav.StatusLoading {
		title += " " + a.spinner.View()
	}
	return title
}

func (a *App) tabsView() string {
	view := a.nav.Location().View
	tab := func(label string, active bool) string {
		if active {
			return styles.ActiveTabStyle.Render(label)
		}
		return styles.TabStyle.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		tab("Movies", view == nav.ViewMovies),
		tab("Series", view == nav.ViewSeries),
	)
}

func (a *App) bodyLines(width int) []string {
	region := a.visible
	if region == nav.RegionPlayer {
		return a.playerLines(width)
	}

	l := a.nav.List(region)
	noun := regionNoun(region)
	switch l.Status() {
	case nav.StatusIdle:
		return nil
	case nav.StatusLoading:
		return []string{styles.MetadataStyle.Render(fmt.Sprintf("  %s Loading %s...", a.spinner.View(), noun))}
	case nav.StatusError:
		msg := fmt.Sprintf("Failed to load %s: %v", noun, l.Err())
		lines := utils.WrapText(msg, max(width-4, 10))
		for i := range lines {
			lines[i] = "  " + styles.ErrorStyle.Render(lines[i])
		}
		return lines
	case nav.StatusEmpty:
		if q := a.nav.Search().Committed(); q != "" && region.Home() {
			return []string{styles.MetadataStyle.Render(fmt.Sprintf("  No %s match %q", noun, q))}
		}
		return []string{styles.MetadataStyle.Render("  No " + noun)}
	}

	query := ""
	if region.Home() {
		query = a.nav.Search().Committed()
	}
	items := l.Items()
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = renderRow(item, query, i == l.Focused(), width)
	}
	return lines
}

// renderRow draws one catalog row: the title, matched characters
// highlighted, followed by muted metadata
func renderRow(item catalog.Item, query string, selected bool, width int) string {
	prefix := ""
	meta := itemMeta(item)
	if item.Kind == catalog.KindSubItem && item.SubItem != nil {
		prefix = item.SubItem.Label() + "  "
	}

	base := styles.NormalItemStyle
	if selected {
		base = styles.SelectedItemStyle
	}

	room := width - 4 - runewidth.StringWidth(prefix) - runewidth.StringWidth(meta)
	title := utils.TruncateWithWidth(item.Title(), max(room, 8))

	text := lipgloss.NewStyle().Inherit(base).UnsetPadding().UnsetBorderStyle().UnsetBorderLeft()
	line := prefix + common.Highlight(title, query, text, styles.MatchStyle)
	if meta != "" {
		line += styles.MetadataStyle.Render(meta)
	}
	return base.Render(line)
}

func itemMeta(item catalog.Item) string {
	var parts []string
	switch item.Kind {
	case catalog.KindStandalone:
		if s := item.Standalone; s != nil {
			parts = appendNonEmpty(parts, s.Year, s.Length)
		}
	case catalog.KindCollection:
		if c := item.Collection; c != nil {
			parts = appendNonEmpty(parts, c.YearRange)
			if c.TotalEpisodes > 0 {
				parts = append(parts, humanize.Comma(int64(c.TotalEpisodes))+" episodes")
			}
		}
	}
	if subs := item.Subtitles(); len(subs) > 0 {
		codes := make([]string, 0, len(subs))
		for _, s := range subs {
			codes = append(codes, s.LanguageCode)
		}
		parts = append(parts, "CC "+strings.Join(codes, ","))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, " · ")
}

func appendNonEmpty(parts []string, values ...string) []string {
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return parts
}

func (a *App) playerLines(width int) []string {
	np := a.nav.Player().NowPlaying()
	switch {
	case a.playErr != nil:
		lines := []string{"  " + styles.ErrorStyle.Render("Playback failed")}
		for _, l := range utils.WrapText(a.playErr.Error(), max(width-4, 10)) {
			lines = append(lines, "  "+styles.MetadataStyle.Render(l))
		}
		return append(lines, "", "  "+styles.MetadataStyle.Render("esc to go back"))
	case np == nil:
		return []string{"  " + a.spinner.View() + " Starting playback..."}
	}

	title := np.Item.Title()
	if np.Collection != nil && np.Item.SubItem != nil {
		title = fmt.Sprintf("%s · %s · %s", np.Collection.Title, np.Item.SubItem.Label(), title)
	}
	lines := []string{
		"  " + styles.SubtitleStyle.Render("Now playing"),
		"  " + styles.NormalItemStyle.UnsetPadding().Render(utils.TruncateWithWidth(title, max(width-4, 10))),
		"  " + styles.URLStyle.Render(utils.TruncateWithWidth(np.Source, max(width-4, 10))),
		"",
	}
	if len(np.Tracks) == 0 {
		return append(lines, "  "+styles.MetadataStyle.Render("No subtitles"))
	}
	lines = append(lines, "  "+styles.MetadataStyle.Render("Subtitles"))
	for _, t := range np.Tracks {
		label := fmt.Sprintf("%s (%s)", t.Language, t.LanguageCode)
		if t.Default {
			lines = append(lines, "   "+styles.DefaultTrackStyle.Render("● "+label))
			continue
		}
		lines = append(lines, "   "+styles.MetadataStyle.Render("○ "+label))
	}
	return lines
}

func (a *App) statusView(width int) string {
	left := a.status
	if left == "" {
		left = a.summary()
	}
	right := ""
	if a.lastPlayed != nil {
		right = fmt.Sprintf("last played %s %s", a.lastPlayed.Title, humanize.Time(a.lastPlayed.PlayedAt))
	}

	inner := max(width-2, 0)
	if runewidth.StringWidth(left)+runewidth.StringWidth(right)+1 > inner {
		right = ""
	}
	left = utils.TruncateWithWidth(left, inner)
	line := utils.PadRight(left, inner-runewidth.StringWidth(right)) + right
	if a.status != "" {
		return styles.FooterStyle.Render(styles.StatusStyle.Render(line))
	}
	return styles.FooterStyle.Render(line)
}

// summary describes the active list, e.g. "1,204 movies matching "dune""
func (a *App) summary() string {
	region := a.visible
	if region == nav.RegionPlayer {
		return "player"
	}
	l := a.nav.List(region)
	s := fmt.Sprintf("%s %s", humanize.Comma(int64(l.Total())), regionNoun(region))
	if q := a.nav.Search().Committed(); q != "" && region.Home() {
		s += fmt.Sprintf(" matching %q", q)
	}
	if a.nav.Search().Pending() {
		s += " ..."
	}
	return s
}

func regionNoun(r nav.Region) string {
	switch r {
	case nav.RegionMovies:
		return "movies"
	case nav.RegionCollections:
		return "series"
	case nav.RegionSubItems:
		return "episodes"
	}
	return "items"
}
