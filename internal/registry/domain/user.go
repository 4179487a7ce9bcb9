package domain

import "encoding/json"

// User is a login account owned by exactly one App. It is a value: update
// methods return a modified copy and never touch the receiver, so a caller
// holding an older User never observes later changes.
//
// Passwords are kept and compared in plaintext. This is a known weakness of
// the registry contract, not an oversight.
type User struct {
	id        int64
	persisted bool
	appID     string
	alias     string
	username  string
	password  string
	deleted   bool
}

// RestoreUser rebuilds a stored user. Only persistence gateways call it.
func RestoreUser(id int64, appID, alias, username, password string) User {
	return User{
		id:        id,
		persisted: true,
		appID:     appID,
		alias:     alias,
		username:  username,
		password:  password,
	}
}

func newUser(appID, alias, username, password string) User {
	return User{
		appID:    appID,
		alias:    alias,
		username: username,
		password: password,
	}
}

// ID reports the storage identity. ok is false until the user is saved.
func (u User) ID() (id int64, ok bool) {
	return u.id, u.persisted
}

func (u User) AppID() string    { return u.appID }
func (u User) Alias() string    { return u.alias }
func (u User) Username() string { return u.username }
func (u User) Password() string { return u.password }

// IsDeleted is reserved. Removal is a hard delete, so it is always false.
func (u User) IsDeleted() bool { return u.deleted }

func (u User) UpdateAlias(alias string) User {
	if u.alias == alias {
		return u
	}
	u.alias = alias
	return u
}

func (u User) UpdateUsername(username string) User {
	if u.username == username {
		return u
	}
	u.username = username
	return u
}

func (u User) UpdatePassword(password string) User {
	if u.password == password {
		return u
	}
	u.password = password
	return u
}

type userJSON struct {
	ID       *int64 `json:"id"`
	Alias    string `json:"alias"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (u User) MarshalJSON() ([]byte, error) {
	out := userJSON{
		Alias:    u.alias,
		Username: u.username,
		Password: u.password,
	}
	if u.persisted {
		id := u.id
		out.ID = &id
	}
	return json.Marshal(out)
}
