// Package tactics holds per-entity combat configuration: attitude, defense
// response, hand preferences, mercy policy, and zone focus. All enum fields
// are validated at the setter boundary; the resolution engine never sees an
// out-of-range value.
package tactics

import (
	"fmt"
	"strconv"
	"strings"
)

// Attitude is an entity's combat aggressiveness setting. It biases opponent
// selection, attack/defense modifiers, and how much action deficit the entity
// tolerates before it stops acting.
type Attitude string

const (
	AttitudeInsane    Attitude = "insane"
	AttitudeOffensive Attitude = "offensive"
	AttitudeNeutral   Attitude = "neutral"
	AttitudeDefensive Attitude = "defensive"
	AttitudeWimp      Attitude = "wimp"
)

// Response is an entity's defense style.
type Response string

const (
	ResponseParry   Response = "parry"
	ResponseDodge   Response = "dodge"
	ResponseBoth    Response = "both"
	ResponseNeutral Response = "neutral"
)

// Hand selects which hand(s) to attack or parry with.
type Hand string

const (
	HandLeft  Hand = "left"
	HandRight Hand = "right"
	HandBoth  Hand = "both"
)

// Mercy is an entity's surrender-handling policy.
type Mercy string

const (
	MercyAlways Mercy = "always"
	MercyNever  Mercy = "never"
	MercyAsk    Mercy = "ask"
)

// FocusNone is the neutral focus-zone value (no preferred target zone).
const FocusNone = "none"

// FocusUpperBody and FocusLowerBody split the defender's zone list in half.
const (
	FocusUpperBody = "upper body"
	FocusLowerBody = "lower body"
)

var (
	attitudeOptions = []Attitude{AttitudeInsane, AttitudeOffensive, AttitudeNeutral, AttitudeDefensive, AttitudeWimp}
	responseOptions = []Response{ResponseParry, ResponseDodge, ResponseBoth, ResponseNeutral}
	handOptions     = []Hand{HandLeft, HandRight, HandBoth}
	mercyOptions    = []Mercy{MercyAlways, MercyNever, MercyAsk}
	focusOptions    = []string{FocusNone, FocusUpperBody, FocusLowerBody, "head", "chest", "arms", "legs"}
)

// Tactics is the full per-entity combat configuration. The zero value is not
// valid; use Default().
type Tactics struct {
	Attitude      Attitude
	Response      Response
	Parry         Hand
	Attack        Hand
	ParryUnarmed  bool
	Mercy         Mercy
	FocusZone     string
	IdealDistance int
}

// Default returns the tactics every entity starts with.
func Default() Tactics {
	return Tactics{
		Attitude:  AttitudeNeutral,
		Response:  ResponseNeutral,
		Parry:     HandBoth,
		Attack:    HandBoth,
		Mercy:     MercyAsk,
		FocusZone: FocusNone,
	}
}

// Apply mutates one named setting. Unknown settings and out-of-range values
// are rejected with a user-facing error; t is unchanged on error.
//
// Postcondition: on nil return, exactly one field of t has the new value.
func (t *Tactics) Apply(setting, value string) error {
	setting = strings.ToLower(strings.TrimSpace(setting))
	value = strings.ToLower(strings.TrimSpace(value))

	switch setting {
	case "attitude":
		if !contains(attitudeOptions, Attitude(value)) {
			return fmt.Errorf("invalid attitude %q; options: %s", value, joinOptions(attitudeOptions))
		}
		t.Attitude = Attitude(value)
	case "response":
		if !contains(responseOptions, Response(value)) {
			return fmt.Errorf("invalid response %q; options: %s", value, joinOptions(responseOptions))
		}
		t.Response = Response(value)
	case "parry":
		if !contains(handOptions, Hand(value)) {
			return fmt.Errorf("invalid parry hand %q; options: %s", value, joinOptions(handOptions))
		}
		t.Parry = Hand(value)
	case "attack":
		if !contains(handOptions, Hand(value)) {
			return fmt.Errorf("invalid attack hand %q; options: %s", value, joinOptions(handOptions))
		}
		t.Attack = Hand(value)
	case "parry_unarmed":
		switch value {
		case "yes":
			t.ParryUnarmed = true
		case "no":
			t.ParryUnarmed = false
		default:
			return fmt.Errorf("invalid parry_unarmed %q; options: yes, no", value)
		}
	case "mercy":
		if !contains(mercyOptions, Mercy(value)) {
			return fmt.Errorf("invalid mercy %q; options: %s", value, joinOptions(mercyOptions))
		}
		t.Mercy = Mercy(value)
	case "focus":
		if !containsString(focusOptions, value) {
			return fmt.Errorf("invalid focus %q; options: %s", value, strings.Join(focusOptions, ", "))
		}
		t.FocusZone = value
	case "distance":
		d, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("distance must be a number, got %q", value)
		}
		if d < 0 {
			return fmt.Errorf("distance must be non-negative, got %d", d)
		}
		t.IdealDistance = d
	default:
		return fmt.Errorf("unknown tactics setting %q", setting)
	}
	return nil
}

// Describe renders the current settings as the player-facing tactics report.
func (t Tactics) Describe() string {
	var b strings.Builder
	b.WriteString("Your current tactics are:\n")
	fmt.Fprintf(&b, "Attitude: %s\n", t.Attitude)
	fmt.Fprintf(&b, "Response: %s\n", t.Response)
	fmt.Fprintf(&b, "Parry: %s\n", t.Parry)
	fmt.Fprintf(&b, "Attack: %s\n", t.Attack)
	fmt.Fprintf(&b, "Parry Unarmed: %v\n", t.ParryUnarmed)
	fmt.Fprintf(&b, "Mercy: %s\n", t.Mercy)
	fmt.Fprintf(&b, "Focus Zone: %s\n", t.FocusZone)
	fmt.Fprintf(&b, "Ideal Distance: %d", t.IdealDistance)
	return b.String()
}

// OffensiveThreshold is the action deficit above which this attitude stops
// attacking. Aggressive attitudes keep swinging deeper into debt.
func (a Attitude) OffensiveThreshold() int {
	switch a {
	case AttitudeInsane:
		return 50
	case AttitudeOffensive:
		return 25
	case AttitudeDefensive:
		return -25
	case AttitudeWimp:
		return -50
	default:
		return 0
	}
}

// DefensiveThreshold is the action deficit above which this attitude stops
// defending. The mirror image of OffensiveThreshold.
func (a Attitude) DefensiveThreshold() int {
	switch a {
	case AttitudeInsane:
		return -50
	case AttitudeOffensive:
		return -25
	case AttitudeDefensive:
		return 25
	case AttitudeWimp:
		return 50
	default:
		return 0
	}
}

// AttackBias is the flat attack-modifier contribution of this attitude.
func (a Attitude) AttackBias() int {
	switch a {
	case AttitudeInsane:
		return 25
	case AttitudeOffensive:
		return 15
	case AttitudeDefensive:
		return -25
	case AttitudeWimp:
		return -50
	default:
		return 0
	}
}

// DefenseBias is the flat defense-modifier contribution of this attitude.
func (a Attitude) DefenseBias() int {
	switch a {
	case AttitudeInsane:
		return -50
	case AttitudeOffensive:
		return -25
	case AttitudeDefensive:
		return 15
	case AttitudeWimp:
		return 25
	default:
		return 0
	}
}

// InterceptStamina is the stamina drained when an entity with this attitude
// intercepts an attack as a redirected defender and loses the check.
func (a Attitude) InterceptStamina() int {
	switch a {
	case AttitudeInsane:
		return 5
	case AttitudeOffensive:
		return 3
	case AttitudeNeutral:
		return 2
	case AttitudeDefensive:
		return 1
	default:
		return 0
	}
}

// CanParry reports whether this response style allows parrying.
func (r Response) CanParry() bool {
	return r == ResponseParry || r == ResponseBoth
}

func contains[T comparable](opts []T, v T) bool {
	for _, o := range opts {
		if o == v {
			return true
		}
	}
	return false
}

func containsString(opts []string, v string) bool {
	for _, o := range opts {
		if o == v {
			return true
		}
	}
	return false
}

func joinOptions[T ~string](opts []T) string {
	parts := make([]string, len(opts))
	for i, o := range opts {
		parts[i] = string(o)
	}
	return strings.Join(parts, ", ")
}
