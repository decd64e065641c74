package roster

import (
	"log/slog"

	"github.com/jcaldw/trickortreth/internal/dependencies/random"
	"github.com/jcaldw/trickortreth/internal/model"
)

// DefaultPageSize is how many houses fit on one neighborhood screen
const DefaultPageSize = 2

// houseSprites are the art assets assigned to the houses on a page. The
// assignment is shuffled per page render for variety; it never affects
// which players appear.
var houseSprites = []string{
	"/game/house1.png",
	"/game/house2.png",
}

// View is one page of the neighborhood roster
type View struct {
	Items        []*model.Player `json:"items"`
	Sprites      []string        `json:"sprites"`
	Page         int             `json:"page"`
	TotalPages   int             `json:"total_pages"`
	PreviousPage int             `json:"previous_page"`
	NextPage     int             `json:"next_page"`
}

// Service paginates the neighborhood roster into fixed-size pages of
// houses a visitor can knock on
type Service struct {
	random random.Random
	logger *slog.Logger
}

// NewService creates a roster Service
func NewService(random random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: random,
		logger: logger.With(slog.String("component", "roster")),
	}
}

// Page selects the candidate houses for the viewer and returns the
// requested page. When allowedFIDs is non-empty only those fids are
// candidates; otherwise everyone but the viewer is. Out-of-range page
// numbers clamp to the valid range rather than erroring, so a stale
// page index after a roster shrink still renders something sensible.
// An empty candidate list has zero pages.
func (s *Service) Page(players []*model.Player, viewerFID model.FID, allowedFIDs map[model.FID]bool, pageSize, page int) View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	candidates := make([]*model.Player, 0, len(players))
	for _, p := range players {
		if len(allowedFIDs) > 0 {
			if allowedFIDs[p.FID] {
				candidates = append(candidates, p)
			}
			continue
		}
		if p.FID != viewerFID {
			candidates = append(candidates, p)
		}
	}

	totalPages := (len(candidates) + pageSize - 1) / pageSize

	lastPage := totalPages - 1
	if lastPage < 0 {
		lastPage = 0
	}
	if page < 0 {
		page = 0
	}
	if page > lastPage {
		page = lastPage
	}

	start := page * pageSize
	end := start + pageSize
	if start > len(candidates) {
		start = len(candidates)
	}
	if end > len(candidates) {
		end = len(candidates)
	}

	items := candidates[start:end]

	sprites := make([]string, len(houseSprites))
	copy(sprites, houseSprites)
	s.random.Shuffle(len(sprites), func(i, j int) {
		sprites[i], sprites[j] = sprites[j], sprites[i]
	})

	prev := page - 1
	if prev < 0 {
		prev = 0
	}
	next := page + 1
	if next > lastPage {
		next = lastPage
	}

	return View{
		Items:        items,
		Sprites:      sprites,
		Page:         page,
		TotalPages:   totalPages,
		PreviousPage: prev,
		NextPage:     next,
	}
}
