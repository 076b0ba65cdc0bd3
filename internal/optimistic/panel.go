package optimistic

import (
	"context"
	"errors"

	"github.com/tbourn/go-advent-calendar/internal/apiclient"
	"github.com/tbourn/go-advent-calendar/internal/domain"
	"github.com/tbourn/go-advent-calendar/internal/services"
)

// ReactionAPI is the server side of a reaction toggle.
type ReactionAPI interface {
	ToggleReaction(ctx context.Context, articleID string, t domain.ReactionType) (services.Action, error)
}

// ReactionView is one emoji button as displayed.
type ReactionView struct {
	Emoji   domain.ReactionType
	Label   string
	Count   int
	Active  bool
	Pending bool
}

// ReactionPanel holds the optimistic state of every emoji on one article.
// Each emoji is an independent key.
type ReactionPanel struct {
	articleID string
	api       ReactionAPI
	sync      *Synchronizer[domain.ReactionType]
}

// NewReactionPanel seeds a panel from server counts and the viewer's own
// reaction types.
func NewReactionPanel(articleID string, api ReactionAPI, counts map[domain.ReactionType]int, mine []domain.ReactionType) *ReactionPanel {
	p := &ReactionPanel{articleID: articleID, api: api, sync: New[domain.ReactionType]()}
	active := make(map[domain.ReactionType]bool, len(mine))
	for _, t := range mine {
		active[t] = true
	}
	for _, o := range domain.AvailableReactions {
		_ = p.sync.Seed(o.Emoji, Snapshot{Active: active[o.Emoji], Count: counts[o.Emoji]})
	}
	return p
}

// Toggle flips emoji t. It fails fast with services.ErrInvalidReaction for
// types outside the palette and with ErrPending while t is in flight.
func (p *ReactionPanel) Toggle(ctx context.Context, t domain.ReactionType) (<-chan Outcome[domain.ReactionType], error) {
	if !t.Valid() {
		return nil, services.ErrInvalidReaction
	}
	return p.sync.Toggle(ctx, t, func(ctx context.Context) error {
		_, err := p.api.ToggleReaction(ctx, p.articleID, t)
		return err
	})
}

// View returns the palette in display order.
func (p *ReactionPanel) View() []ReactionView {
	out := make([]ReactionView, 0, len(domain.AvailableReactions))
	for _, o := range domain.AvailableReactions {
		st := p.sync.State(o.Emoji)
		out = append(out, ReactionView{
			Emoji:   o.Emoji,
			Label:   o.Label,
			Count:   st.Count,
			Active:  st.Active,
			Pending: p.sync.Pending(o.Emoji),
		})
	}
	return out
}

// DeclarationAPI is the server side of a declaration. Declaration is read
// back after a duplicate conflict to learn the real count.
type DeclarationAPI interface {
	Declare(ctx context.Context, date string) (*domain.Declaration, error)
	Declaration(ctx context.Context, date string) (apiclient.DeclarationStatus, error)
}

// ErrAlreadyActive is returned when declaring a date that is already shown
// as declared. No call is made.
var ErrAlreadyActive = errors.New("optimistic: already declared")

// DeclarationToggle holds the optimistic declared flag and count per date.
//
// A failed declaration is rolled back like any other toggle. When the
// failure is a duplicate conflict the server has proven the caller is
// declared, so the rolled back state is then replaced by declared=true with
// the server's count, and the outcome is marked Adopted.
type DeclarationToggle struct {
	api  DeclarationAPI
	sync *Synchronizer[string]
}

// NewDeclarationToggle returns an empty DeclarationToggle.
func NewDeclarationToggle(api DeclarationAPI) *DeclarationToggle {
	return &DeclarationToggle{
		api:  api,
		sync: New[string](WithReconciler(adoptDeclared)),
	}
}

// declaredConflict carries the server's declaration status, read after a
// duplicate conflict, to the reconciler.
type declaredConflict struct {
	err    error
	status apiclient.DeclarationStatus
	fresh  bool
}

func (e *declaredConflict) Error() string { return e.err.Error() }
func (e *declaredConflict) Unwrap() error { return e.err }

func adoptDeclared(restored Snapshot, err error) (Snapshot, bool) {
	if services.KindOf(err) != services.KindDuplicateConflict {
		return restored, false
	}
	var dc *declaredConflict
	if errors.As(err, &dc) && dc.fresh {
		return Snapshot{Active: true, Count: max(dc.status.Count, 1)}, true
	}
	// Without a fresh read the restored count is kept; the caller's own
	// declaration is the only one known for certain.
	return Snapshot{Active: true, Count: max(restored.Count, 1)}, true
}

// Seed sets the displayed state for date.
func (d *DeclarationToggle) Seed(date string, declared bool, count int) error {
	return d.sync.Seed(date, Snapshot{Active: declared, Count: count})
}

// State returns the displayed state for date.
func (d *DeclarationToggle) State(date string) Snapshot { return d.sync.State(date) }

// Pending reports whether date has a call in flight.
func (d *DeclarationToggle) Pending(date string) bool { return d.sync.Pending(date) }

// Declare optimistically marks date declared and calls the server.
// Declarations are one-way: a date already shown as declared returns
// ErrAlreadyActive.
func (d *DeclarationToggle) Declare(ctx context.Context, date string) (<-chan Outcome[string], error) {
	if d.sync.State(date).Active {
		return nil, ErrAlreadyActive
	}
	return d.sync.Mutate(ctx, date, declare, func(ctx context.Context) error {
		_, err := d.api.Declare(ctx, date)
		if services.KindOf(err) != services.KindDuplicateConflict {
			return err
		}
		st, rerr := d.api.Declaration(ctx, date)
		return &declaredConflict{err: err, status: st, fresh: rerr == nil}
	})
}

func declare(s Snapshot) Snapshot {
	if s.Active {
		return s
	}
	return Snapshot{Active: true, Count: s.Count + 1}
}

// AlreadyDeclared reports whether o settled by adopting the server's
// "already declared" answer.
func AlreadyDeclared(o Outcome[string]) bool {
	return o.Adopted && errors.Is(o.Err, services.ErrAlreadyDeclared)
}
