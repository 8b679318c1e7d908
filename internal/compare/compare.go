// Package compare backs the meme page that pits two GitHub users' yearly
// contribution totals against each other.
package compare

import (
	"context"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"devb-web/internal/common"
	"devb-web/internal/domain"
)

const SelfCompareMessage = "You can't compare to yourself :')"

// Total sums the per-year totals.
func Total(d *domain.ContributionsData) int {
	if d == nil {
		return 0
	}
	sum := 0
	for _, n := range d.Total {
		sum += n
	}
	return sum
}

// MemeIndex buckets the relative gap between two totals into 0-9, which picks
// the meme template. Two zero totals are index 0.
func MemeIndex(a, b int) int {
	if a == 0 && b == 0 {
		return 0
	}
	maxTotal := max(a, b)
	diff := math.Abs(float64(a - b))
	idx := int(math.Floor(diff / float64(maxTotal) * 100 / 10))
	return min(idx, 9)
}

// Source is what a comparison reads.
type Source interface {
	Contributions(ctx context.Context, username string) *domain.ContributionsData
	GitHubUser(ctx context.Context, username string) *domain.GitHubUser
}

// Side is one user's half of a comparison.
type Side struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Total    int    `json:"total"`
	Error    string `json:"error,omitempty"`

	Contributions *domain.ContributionsData `json:"-"`
}

func (s Side) FirstName() string {
	if f := strings.Fields(s.Name); len(f) > 0 {
		return f[0]
	}
	return s.Username
}

type Result struct {
	Me        Side   `json:"me"`
	Them      Side   `json:"them"`
	MemeIndex int    `json:"meme_index"`
	Winner    string `json:"winner,omitempty"`
	Loser     string `json:"loser,omitempty"`
}

// Ready reports whether both sides have data.
func (r Result) Ready() bool {
	return r.Me.Contributions != nil && r.Them.Contributions != nil
}

// Compare fetches both users in parallel. A username compared to itself
// returns an error wrapping common.ErrInvalidInput; a user with no data gets a
// per-side message instead of failing the comparison.
func Compare(ctx context.Context, src Source, me, them string) (Result, error) {
	me, them = strings.TrimSpace(me), strings.TrimSpace(them)
	if me == "" || them == "" {
		return Result{}, common.NewAppError("INVALID_INPUT", "both usernames are required", common.ErrInvalidInput)
	}
	if strings.EqualFold(me, them) {
		return Result{}, common.NewAppError("INVALID_INPUT", SelfCompareMessage, common.ErrInvalidInput)
	}

	res := Result{Me: Side{Username: me}, Them: Side{Username: them}}
	var myUser, theirUser *domain.GitHubUser

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { res.Me.Contributions = src.Contributions(gctx, me); return nil })
	g.Go(func() error { myUser = src.GitHubUser(gctx, me); return nil })
	g.Go(func() error { res.Them.Contributions = src.Contributions(gctx, them); return nil })
	g.Go(func() error { theirUser = src.GitHubUser(gctx, them); return nil })
	_ = g.Wait()

	fill(&res.Me, myUser, "Username not found")
	fill(&res.Them, theirUser, "Comparer username not found")
	if !res.Ready() {
		return res, nil
	}

	res.MemeIndex = MemeIndex(res.Me.Total, res.Them.Total)
	if res.Me.Total > res.Them.Total {
		res.Winner, res.Loser = res.Me.FirstName(), res.Them.FirstName()
	} else {
		res.Winner, res.Loser = res.Them.FirstName(), res.Me.FirstName()
	}
	return res, nil
}

func fill(s *Side, u *domain.GitHubUser, missing string) {
	s.Name = s.Username
	if u != nil && u.Name != nil && *u.Name != "" {
		s.Name = *u.Name
	}
	if s.Contributions == nil {
		s.Error = missing
		return
	}
	s.Total = Total(s.Contributions)
}
