package auth

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lifesyncapp/lifesync/internal/model"
	"github.com/lifesyncapp/lifesync/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid username or password")
	ErrUsernameTaken      = errors.New("auth: username already exists")
	ErrNoSession          = errors.New("auth: no user is logged in")
)

// ValidationError carries a recoverable form-level rejection. All of them are
// deterministic and re-checkable immediately.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("auth: %s: %s", e.Field, e.Message)
}

type SignupInput struct {
	Username        string
	Password        string
	ConfirmPassword string
	Name            string
}

func (in SignupInput) Validate() error {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" || strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "form", Message: "Please fill all fields"}
	}
	if len(in.Username) < 4 {
		return &ValidationError{Field: "username", Message: "Username must be at least 4 characters"}
	}
	if len(in.Password) < 6 {
		return &ValidationError{Field: "password", Message: "Password must be at least 6 characters"}
	}
	if in.Password != in.ConfirmPassword {
		return &ValidationError{Field: "confirmPassword", Message: "Passwords don't match"}
	}
	return nil
}

// UserUpdate is a shallow partial: nil fields are left untouched.
type UserUpdate struct {
	Name        *string
	Preferences *model.Preferences
	Stats       *model.Stats
}

// Registry owns the user list and the active session. Passwords are compared
// in plaintext, matching the behavior of the system this replaces; any real
// deployment should hash them instead.
type Registry struct {
	data    *storage.Data
	logger  *zap.Logger
	now     func() time.Time
	users   []model.User
	current *model.User
}

func NewRegistry(data *storage.Data, logger *zap.Logger) (*Registry, error) {
	return NewRegistryAt(data, logger, time.Now)
}

func NewRegistryAt(data *storage.Data, logger *zap.Logger, now func() time.Time) (*Registry, error) {
	if data == nil {
		return nil, errors.New("auth: nil data")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}

	users, err := data.Users()
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if len(users) == 0 {
		users = SeedUsers()
		if err := data.SaveUsers(users); err != nil {
			return nil, fmt.Errorf("seed users: %w", err)
		}
	}
	current, err := data.CurrentUser()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	return &Registry{
		data:    data,
		logger:  logger.Named("auth"),
		now:     now,
		users:   users,
		current: current,
	}, nil
}

// CurrentUser returns a copy of the active user, or nil without a session.
func (r *Registry) CurrentUser() *model.User {
	if r.current == nil {
		return nil
	}
	out := *r.current
	return &out
}

func (r *Registry) Users() []model.User {
	out := make([]model.User, len(r.users))
	copy(out, r.users)
	return out
}

func (r *Registry) Login(username, password string) (model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Password == password {
			user := u
			r.current = &user
			if err := r.data.SaveCurrentUser(&user); err != nil {
				return model.User{}, fmt.Errorf("persist session: %w", err)
			}
			r.logger.Info("user logged in", zap.String("user_id", user.ID))
			return user, nil
		}
	}
	return model.User{}, ErrInvalidCredentials
}

func (r *Registry) Signup(in SignupInput) (model.User, error) {
	if err := in.Validate(); err != nil {
		return model.User{}, err
	}
	for _, u := range r.users {
		if u.Username == in.Username {
			return model.User{}, ErrUsernameTaken
		}
	}

	user := model.User{
		ID:          uuid.NewString(),
		Username:    in.Username,
		Password:    in.Password,
		Name:        in.Name,
		CreatedAt:   model.FormatDate(r.now()),
		Preferences: model.DefaultPreferences(),
		Stats:       model.Stats{DaysActive: []string{}},
	}
	r.users = append(r.users, user)
	r.current = &user
	if err := r.persist(); err != nil {
		return model.User{}, err
	}
	r.logger.Info("user signed up", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

func (r *Registry) Logout() error {
	if r.current != nil {
		r.logger.Info("user logged out", zap.String("user_id", r.current.ID))
	}
	r.current = nil
	return r.data.ClearCurrentUser()
}

// UpdateUser shallow-merges the partial into the current user and the
// registry's copy. Validation beyond the merge is left to the caller.
func (r *Registry) UpdateUser(update UserUpdate) (model.User, error) {
	if r.current == nil {
		return model.User{}, ErrNoSession
	}
	user := *r.current
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Preferences != nil {
		user.Preferences = *update.Preferences
	}
	if update.Stats != nil {
		user.Stats = *update.Stats
	}
	r.replaceUser(user)
	if err := r.persist(); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// DeleteAccount removes the user and every store key namespaced to them. The
// confirmation must be an exact re-entry of the username; this is the only
// gate in front of an irrecoverable purge.
func (r *Registry) DeleteAccount(confirmUsername string) error {
	if r.current == nil {
		return ErrNoSession
	}
	if confirmUsername != r.current.Username {
		return &ValidationError{Field: "confirmUsername", Message: "Username doesn't match"}
	}

	userID := r.current.ID
	kept := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		if u.ID != userID {
			kept = append(kept, u)
		}
	}
	r.users = kept
	if err := r.data.SaveUsers(r.users); err != nil {
		return fmt.Errorf("persist users: %w", err)
	}
	if err := r.data.PurgeUser(userID); err != nil {
		return fmt.Errorf("purge user data: %w", err)
	}
	r.current = nil
	if err := r.data.ClearCurrentUser(); err != nil {
		return err
	}
	r.logger.Info("account deleted", zap.String("user_id", userID))
	return nil
}

// RecordActivity marks today as an active day and recomputes streaks. Calling
// it again on the same calendar date is a no-op.
func (r *Registry) RecordActivity() (model.User, error) {
	if r.current == nil {
		return model.User{}, ErrNoSession
	}
	today := model.FormatDate(r.now())
	user := *r.current
	if user.Stats.HasDay(today) {
		return user, nil
	}

	days := append(append([]string{}, user.Stats.DaysActive...), today)
	sort.Strings(days)
	user.Stats.DaysActive = days
	user.Stats.CurrentStreak = CurrentStreak(days)
	if user.Stats.CurrentStreak > user.Stats.LongestStreak {
		user.Stats.LongestStreak = user.Stats.CurrentStreak
	}

	r.replaceUser(user)
	if err := r.persist(); err != nil {
		return model.User{}, err
	}
	r.logger.Debug("activity recorded",
		zap.String("user_id", user.ID),
		zap.Int("current_streak", user.Stats.CurrentStreak),
	)
	return user, nil
}

// CurrentStreak counts consecutive calendar days ending at the most recent
// entry of a sorted day list, stopping at the first gap.
func CurrentStreak(sortedDays []string) int {
	if len(sortedDays) == 0 {
		return 0
	}
	streak := 1
	for i := len(sortedDays) - 2; i >= 0; i-- {
		prev, err := time.Parse(model.DateLayout, sortedDays[i])
		if err != nil {
			break
		}
		curr, err := time.Parse(model.DateLayout, sortedDays[i+1])
		if err != nil {
			break
		}
		if int(curr.Sub(prev).Hours()/24) == 1 {
			streak++
			continue
		}
		break
	}
	return streak
}

func (r *Registry) replaceUser(user model.User) {
	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = user
			break
		}
	}
	r.current = &user
}

func (r *Registry) persist() error {
	if err := r.data.SaveUsers(r.users); err != nil {
		return fmt.Errorf("persist users: %w", err)
	}
	if err := r.data.SaveCurrentUser(r.current); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}
