package identity

import "time"

// RefreshCredential is the single currently valid refresh token for a
// subject. The subject ID is the key: a new login or a rotation overwrites
// the slot, it never appends. Two concurrent logins for the same subject
// race on last-write-wins, which is the intended single-active-refresh-token
// policy — the loser's session simply becomes unrefreshable.
type RefreshCredential struct {
	SubjectID string
	Token     string
	UpdatedAt time.Time
}
