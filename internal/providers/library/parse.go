package library

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/justchokingaround/reel/internal/providers/utils"
)

var (
	videoExts    = map[string]bool{".mp4": true, ".mkv": true, ".avi": true, ".mov": true, ".webm": true}
	subtitleExts = map[string]bool{".srt": true, ".vtt": true, ".ass": true, ".sub": true}

	yearRe      = regexp.MustCompile(`\((\d{4})\)`)
	yearStripRe = regexp.MustCompile(`\s*\(\d{4}\)\s*`)
	nonAlnumRe  = regexp.MustCompile(`[^a-zA-Z0-9]`)

	seasonRes = []*regexp.Regexp{
		regexp.MustCompile(`[Ss]eason[\s._-]*(\d+)`),
		regexp.MustCompile(`[Ss](\d+)`),
		regexp.MustCompile(`^(\d+)$`),
	}
	episodeRes = []*regexp.Regexp{
		regexp.MustCompile(`[Ee](\d+)`),
		regexp.MustCompile(`[Ee]pisode[\s._-]*(\d+)`),
		regexp.MustCompile(`[\s._-](\d+)[\s._-]`),
		regexp.MustCompile(`^(\d+)[\s._-]`),
	}
	languageRes = []*regexp.Regexp{
		regexp.MustCompile(`\.([a-z]{2,3})$`),
		regexp.MustCompile(`[._]([a-z]{2,3})[._]`),
		regexp.MustCompile(`[._](english|spanish|french|german|italian)$`),
	}
	languageNames = map[string]string{
		"english": "en", "spanish": "es", "french": "fr", "german": "de", "italian": "it",
	}
	languageLabels = map[string]string{
		"en": "English", "es": "Spanish", "fr": "French", "de": "German", "it": "Italian",
	}
)

func isVideo(name string) bool {
	return videoExts[strings.ToLower(filepath.Ext(name))]
}

func isSubtitle(name string) bool {
	return subtitleExts[strings.ToLower(filepath.Ext(name))]
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// parseName splits "Movie.Title (1999)" into "Movie Title" and "1999"
func parseName(name string) (title, year string) {
	if m := yearRe.FindStringSubmatch(name); m != nil {
		year = m[1]
		name = yearStripRe.ReplaceAllString(name, " ")
	}
	return utils.Spaced(name, "._"), year
}

// makeID lowercases name and replaces every non-alphanumeric with '_'
func makeID(name string) string {
	return strings.ToLower(nonAlnumRe.ReplaceAllString(name, "_"))
}

func firstNumber(res []*regexp.Regexp, s string) (int, bool) {
	for _, re := range res {
		if m := re.FindStringSubmatch(s); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil && n > 0 {
				return n, true
			}
		}
	}
	return 0, false
}

func seasonNumber(folder string) (int, bool) {
	return firstNumber(seasonRes, folder)
}

func episodeNumber(name string) (int, bool) {
	return firstNumber(episodeRes, name)
}

// episodeTitle strips season/episode markers from a file stem and returns
// what is left, or "" when nothing is
func episodeTitle(name string, season, episode int) string {
	markers := []string{
		fmt.Sprintf(`(?i)s%02de%02d`, season, episode),
		fmt.Sprintf(`(?i)season[\s._-]*%d[\s._-]*episode[\s._-]*%d`, season, episode),
		fmt.Sprintf(`(?i)e%02d`, episode),
		fmt.Sprintf(`(?i)episode[\s._-]*%d`, episode),
	}
	for _, m := range markers {
		name = regexp.MustCompile(m).ReplaceAllString(name, "")
	}
	return utils.Spaced(name, "._-")
}

// subtitleLanguage guesses a language code from a subtitle file stem
func subtitleLanguage(name string) string {
	lower := strings.ToLower(name)
	for _, re := range languageRes {
		if m := re.FindStringSubmatch(lower); m != nil {
			if code, ok := languageNames[m[1]]; ok {
				return code
			}
			return m[1]
		}
	}
	return "unknown"
}

func languageLabel(code string) string {
	return utils.DefaultString(languageLabels[code], strings.ToUpper(code))
}
