package cascade

import "fmt"

// DeleteKind is the way a row is removed.
type DeleteKind int

const (
	// Regular physically removes the row.
	Regular DeleteKind = iota
	// Soft sets the row's deleted-at field and keeps the row.
	Soft
)

// String implements fmt.Stringer.
func (k DeleteKind) String() string {
	switch k {
	case Regular:
		return "regular"
	case Soft:
		return "soft"
	}
	return fmt.Sprintf("DeleteKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k DeleteKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *DeleteKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "regular", "hard":
		*k = Regular
	case "soft":
		*k = Soft
	default:
		return fmt.Errorf("cascade: unknown delete kind %q", text)
	}
	return nil
}

// Policy controls whether and how a parent's deletion propagates to the
// rows on the other side of a relationship.
type Policy int

const (
	// None never cascades.
	None Policy = iota
	// Same cascades with the parent's delete kind. A soft parent delete only
	// reaches soft-deletable targets.
	Same
	// ForceRegular always hard-deletes the related rows.
	ForceRegular
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	switch p {
	case None:
		return "none"
	case Same:
		return "same"
	case ForceRegular:
		return "force_regular"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "none":
		*p = None
	case "same":
		*p = Same
	case "force_regular":
		*p = ForceRegular
	default:
		return fmt.Errorf("cascade: unknown cascade policy %q", text)
	}
	return nil
}

// CascadesRegular reports whether a kind delete hard-deletes the related rows.
func CascadesRegular(kind DeleteKind, p Policy) bool {
	return p == ForceRegular || (p == Same && kind == Regular)
}

// CascadesSoft reports whether a kind delete soft-deletes the related rows of target.
func CascadesSoft(kind DeleteKind, p Policy, target Type) bool {
	return p == Same && kind == Soft && target.SoftDeletable()
}

// Cascades reports whether a kind delete reaches the related rows of target at all.
func Cascades(kind DeleteKind, p Policy, target Type) bool {
	return CascadesRegular(kind, p) || CascadesSoft(kind, p, target)
}

// ChildKind returns the delete kind applied to related rows of target, and
// false when the relationship does not cascade.
func ChildKind(kind DeleteKind, p Policy, target Type) (DeleteKind, bool) {
	switch {
	case CascadesSoft(kind, p, target):
		return Soft, true
	case CascadesRegular(kind, p):
		return Regular, true
	}
	return kind, false
}
