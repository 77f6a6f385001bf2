package value

// UnlockState is the per-deal affiliate link unlock state. Unlocked is terminal
// within a session.
type UnlockState string

const (
	UnlockStateLocked    UnlockState = "locked"
	UnlockStateUnlocking UnlockState = "unlocking"
	UnlockStateUnlocked  UnlockState = "unlocked"
)

func (s UnlockState) String() string {
	return string(s)
}
