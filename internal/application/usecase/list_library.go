package usecase

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/bnema/gamedesk/internal/domain/entity"
	"github.com/bnema/gamedesk/internal/domain/repository"
	"github.com/bnema/gamedesk/internal/logging"
)

// LibrarySort names a sortable library column.
type LibrarySort string

const (
	SortByTitle      LibrarySort = "title"
	SortByPlayTime   LibrarySort = "playtime"
	SortByLastPlayed LibrarySort = "last-played"
	SortByPublished  LibrarySort = "published"
)

// LibrarySorts lists the accepted sort keys.
var LibrarySorts = []LibrarySort{SortByTitle, SortByPlayTime, SortByLastPlayed, SortByPublished}

// ParseLibrarySort maps a user-supplied key to a LibrarySort.
func ParseLibrarySort(s string) (LibrarySort, error) {
	key := LibrarySort(strings.ToLower(strings.TrimSpace(s)))
	if key == "" {
		return SortByTitle, nil
	}
	for _, known := range LibrarySorts {
		if key == known {
			return key, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// ListLibraryInput filters and orders the library.
type ListLibraryInput struct {
	// Query matches titles, case-insensitively.
	Query string
	// OnlyCompatible hides games without a build for Platform.
	OnlyCompatible bool
	// Platform is a GOOS value; empty means the running platform.
	Platform   string
	SortBy     LibrarySort
	Descending bool
}

// LibraryRow is a rendered library table row. PlayTime and LastPlayed are
// empty for games that are not installed.
type LibraryRow struct {
	Record     entity.GameRecord
	Name       string
	ShortText  string
	PlayTime   string
	LastPlayed string
	Published  string
}

// ListLibraryOutput holds the visible rows and how many records the
// filters hid.
type ListLibraryOutput struct {
	Rows        []LibraryRow
	HiddenCount int
}

// ListLibraryUseCase builds the game library table.
type ListLibraryUseCase struct {
	games repository.GameRepository
	caves repository.CaveRepository
	now   func() time.Time
}

// NewListLibraryUseCase creates a new ListLibraryUseCase.
func NewListLibraryUseCase(games repository.GameRepository, caves repository.CaveRepository) *ListLibraryUseCase {
	return &ListLibraryUseCase{games: games, caves: caves, now: time.Now}
}

// WithClock overrides the clock used for relative dates.
func (uc *ListLibraryUseCase) WithClock(now func() time.Time) *ListLibraryUseCase {
	uc.now = now
	return uc
}

// Execute loads every game, pairs it with its most recently played cave,
// then filters, sorts and formats the records.
func (uc *ListLibraryUseCase) Execute(ctx context.Context, input ListLibraryInput) (*ListLibraryOutput, error) {
	log := logging.FromContext(ctx)

	games, err := uc.games.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	caves, err := uc.caves.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list caves: %w", err)
	}

	records := joinRecords(games, caves)
	visible := FilterRecords(records, input)
	SortRecords(visible, input.SortBy, input.Descending)

	now := uc.now()
	out := &ListLibraryOutput{
		Rows:        make([]LibraryRow, 0, len(visible)),
		HiddenCount: len(records) - len(visible),
	}
	for _, rec := range visible {
		out.Rows = append(out.Rows, formatRow(rec, now))
	}

	log.Debug().
		Int("total", len(records)).
		Int("visible", len(out.Rows)).
		Int("hidden", out.HiddenCount).
		Msg("library listed")
	return out, nil
}

func joinRecords(games []*entity.Game, caves []*entity.Cave) []entity.GameRecord {
	byGame := make(map[int64]*entity.Cave, len(caves))
	for _, c := range caves {
		if prev, ok := byGame[c.GameID]; !ok || touchedAfter(c, prev) {
			byGame[c.GameID] = c
		}
	}

	records := make([]entity.GameRecord, 0, len(games))
	for _, g := range games {
		records = append(records, entity.GameRecord{Game: g, Cave: byGame[g.ID]})
	}
	return records
}

func touchedAfter(a, b *entity.Cave) bool {
	switch {
	case a.LastTouchedAt == nil:
		return false
	case b.LastTouchedAt == nil:
		return true
	default:
		return a.LastTouchedAt.After(*b.LastTouchedAt)
	}
}

// FilterRecords keeps the records matching the query and compatibility
// filters. The input slice is not modified.
func FilterRecords(records []entity.GameRecord, input ListLibraryInput) []entity.GameRecord {
	query := strings.ToLower(strings.TrimSpace(input.Query))
	platform := input.Platform
	if platform == "" {
		platform = runtime.GOOS
	}

	out := make([]entity.GameRecord, 0, len(records))
	for _, rec := range records {
		if rec.Game == nil {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(rec.Game.Title), query) {
			continue
		}
		if input.OnlyCompatible && !rec.Game.Platforms.Supports(platform) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// SortRecords orders records in place. Missing values sort last in both
// directions; ties fall back to the title.
func SortRecords(records []entity.GameRecord, by LibrarySort, descending bool) {
	primary := func(a, b entity.GameRecord) int {
		switch by {
		case SortByPlayTime:
			return missingLast(compareInt(secondsRun(a), secondsRun(b)), descending)
		case SortByLastPlayed:
			return missingLast(compareTime(lastTouched(a), lastTouched(b)), descending)
		case SortByPublished:
			return missingLast(compareTime(a.Game.PublishedAt, b.Game.PublishedAt), descending)
		default:
			return 0
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if c := primary(a, b); c != 0 {
			return c < 0
		}
		c := strings.Compare(strings.ToLower(a.Game.Title), strings.ToLower(b.Game.Title))
		if descending {
			return c > 0
		}
		return c < 0
	})
}

// ordering is a comparison result that remembers whether one side had no
// value.
type ordering struct {
	c       int
	missing bool
}

func missingLast(o ordering, descending bool) int {
	if descending && !o.missing {
		return -o.c
	}
	return o.c
}

func secondsRun(r entity.GameRecord) int64 {
	if r.Cave == nil {
		return -1
	}
	return r.Cave.SecondsRun
}

func lastTouched(r entity.GameRecord) *time.Time {
	if r.Cave == nil {
		return nil
	}
	return r.Cave.LastTouchedAt
}

func compareInt(a, b int64) ordering {
	switch {
	case a < 0 && b < 0:
		return ordering{}
	case a < 0:
		return ordering{c: 1, missing: true}
	case b < 0:
		return ordering{c: -1, missing: true}
	case a < b:
		return ordering{c: -1}
	case a > b:
		return ordering{c: 1}
	default:
		return ordering{}
	}
}

func compareTime(a, b *time.Time) ordering {
	switch {
	case a == nil && b == nil:
		return ordering{}
	case a == nil:
		return ordering{c: 1, missing: true}
	case b == nil:
		return ordering{c: -1, missing: true}
	default:
		return ordering{c: a.Compare(*b)}
	}
}

func formatRow(rec entity.GameRecord, now time.Time) LibraryRow {
	row := LibraryRow{
		Record:    rec,
		Name:      rec.Game.Title,
		ShortText: rec.Game.ShortText,
	}
	if rec.Game.PublishedAt != nil {
		row.Published = RelativeTime(now, *rec.Game.PublishedAt)
	}
	if rec.Cave != nil {
		row.PlayTime = FormatPlayTime(rec.Cave.SecondsRun)
		if rec.Cave.LastTouchedAt != nil {
			row.LastPlayed = RelativeTime(now, *rec.Cave.LastTouchedAt)
		} else {
			row.LastPlayed = "never"
		}
	}
	return row
}

// FormatPlayTime renders a play duration in short form: "2h 5m", "42m",
// "< 1m".
func FormatPlayTime(seconds int64) string {
	if seconds < 60 {
		return "< 1m"
	}
	d := time.Duration(seconds) * time.Second
	hours := int64(d / time.Hour)
	mins := int64((d % time.Hour) / time.Minute)
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
}

// RelativeTime formats tm relative to now: "just now", "5m ago", "3d ago"...
func RelativeTime(now, tm time.Time) string {
	diff := now.Sub(tm)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(diff.Hours()/(24*7)))
	case diff < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(diff.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(diff.Hours()/(24*365)))
	}
}
