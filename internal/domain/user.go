package domain

import "time"

// UserPrefix maps a chat user to the staff prefix their accounts carry.
type UserPrefix struct {
	UserID    int64
	Prefix    string
	Username  string
	CreatedAt time.Time
}

// NamedAccount is a registered MMK account with the identity fields the
// confidence matcher scores against: the trailing digits of the account
// number and the holder name as they appear on receipts.
type NamedAccount struct {
	Label         string
	AccountSuffix string
	HolderName    string
}
