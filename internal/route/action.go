package route

import (
	"fmt"
	"strconv"
	"strings"
)

// ActionKind names what activating a rendered element does.
type ActionKind string

const (
	ActionNavigate ActionKind = "navigate"
	ActionBack     ActionKind = "back"
	ActionHero     ActionKind = "hero"
	ActionSeason   ActionKind = "season"
)

// Markup attribute names carrying an Action.
const (
	AttrAction   = "data-action"
	AttrFragment = "data-fragment"
	AttrIndex    = "data-index"
)

// Action is the structured descriptor attached to clickable markup.
// Target is used by navigate and season; Index by hero and season.
type Action struct {
	Kind   ActionKind
	Target Route
	Index  int
}

// Navigate returns an action that opens page with params.
func Navigate(page Page, params Params) Action {
	return Action{Kind: ActionNavigate, Target: New(page, params)}
}

// Attrs returns the data attributes describing a.
func (a Action) Attrs() map[string]string {
	attrs := map[string]string{AttrAction: string(a.Kind)}
	switch a.Kind {
	case ActionNavigate:
		attrs[AttrFragment] = a.Target.Fragment()
	case ActionHero:
		attrs[AttrIndex] = strconv.Itoa(a.Index)
	case ActionSeason:
		attrs[AttrFragment] = a.Target.Fragment()
		attrs[AttrIndex] = strconv.Itoa(a.Index)
	}
	return attrs
}

// ParseAction rebuilds an Action from element attributes. lookup returns the
// attribute value and whether it is present.
func ParseAction(lookup func(name string) (string, bool)) (Action, error) {
	kind, ok := lookup(AttrAction)
	if !ok || strings.TrimSpace(kind) == "" {
		return Action{}, fmt.Errorf("element has no %s", AttrAction)
	}
	a := Action{Kind: ActionKind(strings.TrimSpace(kind))}

	switch a.Kind {
	case ActionBack:
		return a, nil
	case ActionNavigate:
		frag, ok := lookup(AttrFragment)
		if !ok {
			return Action{}, fmt.Errorf("navigate action without %s", AttrFragment)
		}
		a.Target = Decode(frag)
		return a, nil
	case ActionHero, ActionSeason:
		raw, _ := lookup(AttrIndex)
		idx, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Action{}, fmt.Errorf("%s action index %q: %w", a.Kind, raw, err)
		}
		a.Index = idx
		if a.Kind == ActionSeason {
			frag, _ := lookup(AttrFragment)
			a.Target = Decode(frag)
		}
		return a, nil
	default:
		return Action{}, fmt.Errorf("unknown action %q", kind)
	}
}
