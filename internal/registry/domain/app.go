package domain

import "encoding/json"

// Policy selects the uniqueness rules an App enforces on its users.
// Username uniqueness is always on.
type Policy struct {
	UniqueAlias bool
}

func DefaultPolicy() Policy {
	return Policy{UniqueAlias: true}
}

// App is the aggregate root of the registry. All user changes go through
// it. An App is not safe for concurrent use; load one per request.
type App struct {
	id     string
	users  []User
	policy Policy
}

func Create(id string) *App {
	return &App{
		id:     id,
		users:  []User{},
		policy: DefaultPolicy(),
	}
}

// Restore rebuilds a stored App with its users in their original order.
func Restore(id string, users []User) *App {
	a := Create(id)
	a.users = append(a.users, users...)
	return a
}

func (a *App) WithPolicy(p Policy) *App {
	a.policy = p
	return a
}

func (a *App) ID() string { return a.id }

func (a *App) Policy() Policy { return a.policy }

// Users returns a copy of the ordered user list.
func (a *App) Users() []User {
	out := make([]User, len(a.users))
	copy(out, a.users)
	return out
}

func (a *App) indexOf(match func(User) bool) int {
	for i, u := range a.users {
		if !u.IsDeleted() && match(u) {
			return i
		}
	}
	return -1
}

func (a *App) indexByUsername(username string) int {
	return a.indexOf(func(u User) bool { return u.username == username })
}

func (a *App) indexByAlias(alias string) int {
	return a.indexOf(func(u User) bool { return u.alias == alias })
}

func (a *App) FindUserByUsername(username string) (User, error) {
	i := a.indexByUsername(username)
	if i < 0 {
		return User{}, ErrUserNotRegistered
	}
	return a.users[i], nil
}

func (a *App) FindUserByAlias(alias string) (User, error) {
	i := a.indexByAlias(alias)
	if i < 0 {
		return User{}, ErrUserNotRegistered
	}
	return a.users[i], nil
}

// CreateUser appends a new user. Username collisions are reported before
// alias collisions.
func (a *App) CreateUser(alias, username, password string) error {
	if a.indexByUsername(username) >= 0 {
		return ErrUsernameAlreadyExists
	}
	if a.policy.UniqueAlias && a.indexByAlias(alias) >= 0 {
		return ErrAliasAlreadyExists
	}

	a.users = append(a.users, newUser(a.id, alias, username, password))
	return nil
}

func (a *App) UpdateUserAlias(username, newAlias string) (*App, error) {
	i := a.indexByUsername(username)
	if i < 0 {
		return a, ErrUserNotRegistered
	}
	if a.users[i].alias == newAlias {
		return a, nil
	}
	if a.policy.UniqueAlias && a.indexByAlias(newAlias) >= 0 {
		return a, ErrAliasAlreadyExists
	}

	a.users[i] = a.users[i].UpdateAlias(newAlias)
	return a, nil
}

// UpdateUserUsername renames a user. Renaming to the current name succeeds
// and changes nothing.
func (a *App) UpdateUserUsername(username, newUsername string) (*App, error) {
	i := a.indexByUsername(username)
	if i < 0 {
		return a, ErrUserNotRegistered
	}
	if username == newUsername {
		return a, nil
	}
	if a.indexByUsername(newUsername) >= 0 {
		return a, ErrUsernameAlreadyExists
	}

	a.users[i] = a.users[i].UpdateUsername(newUsername)
	return a, nil
}

func (a *App) UpdateUserPassword(username, newPassword string) (*App, error) {
	i := a.indexByUsername(username)
	if i < 0 {
		return a, ErrUserNotRegistered
	}

	a.users[i] = a.users[i].UpdatePassword(newPassword)
	return a, nil
}

// Login reports whether the credentials match. An unknown username and a
// wrong password both yield false.
func (a *App) Login(username, password string) bool {
	i := a.indexByUsername(username)
	if i < 0 {
		return false
	}
	return a.users[i].password == password
}

func (a *App) RemoveUser(username string) (*App, error) {
	i := a.indexByUsername(username)
	if i < 0 {
		return a, ErrUserNotRegistered
	}

	users := make([]User, 0, len(a.users)-1)
	users = append(users, a.users[:i]...)
	users = append(users, a.users[i+1:]...)
	a.users = users
	return a, nil
}

// AssignUserIDs gives every unsaved user the id returned by next, in list
// order. Persistence gateways call it once the users are stored.
func (a *App) AssignUserIDs(next func(User) (int64, error)) error {
	for i, u := range a.users {
		if u.persisted {
			continue
		}
		id, err := next(u)
		if err != nil {
			return err
		}
		a.users[i].id = id
		a.users[i].persisted = true
	}
	return nil
}

type appJSON struct {
	ID    string `json:"id"`
	Users []User `json:"users"`
}

func (a *App) MarshalJSON() ([]byte, error) {
	return json.Marshal(appJSON{ID: a.id, Users: a.Users()})
}
