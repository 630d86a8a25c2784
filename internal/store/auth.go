package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SignUpData is the input for SignUp. Field-level validation (formats,
// required fields) happens at the HTTP boundary.
type SignUpData struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// SignUp creates a user with zeroed rating fields, signs the device
// session in as that user and persists the session pointer. Email
// uniqueness is intentionally not enforced; sign-in resolves duplicates by
// credential match.
func (s *Store) SignUp(data SignUpData) (User, error) {
	if data.Role != RoleCustomer && data.Role != RoleProvider {
		return User{}, ErrInvalidRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:            uuid.New().String(),
		Name:          data.Name,
		Email:         strings.TrimSpace(data.Email),
		Password:      string(hashed),
		Role:          data.Role,
		Ratings:       []UserRating{},
		AverageRating: 0,
		CreatedAt:     time.Now().UTC(),
	}

	s.mu.Lock()
	s.data.Users = append(s.data.Users, user)
	cu := cloneUser(user)
	s.data.CurrentUser = &cu
	s.data.IsAuthenticated = true
	s.mu.Unlock()
	s.markDirty()

	s.saveSession(user.ID)

	return cloneUser(user), nil
}

// SignIn matches email and password against the user collection. The
// first user whose email and bcrypt hash both match becomes the session
// user; anything else is ErrInvalidCredentials.
func (s *Store) SignIn(email, password string) (User, error) {
	email = strings.TrimSpace(email)

	s.mu.Lock()
	var matched *User
	for i := range s.data.Users {
		u := &s.data.Users[i]
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil {
			matched = u
			break
		}
	}
	if matched == nil {
		s.mu.Unlock()
		return User{}, ErrInvalidCredentials
	}
	cu := cloneUser(*matched)
	s.data.CurrentUser = &cu
	s.data.IsAuthenticated = true
	user := cloneUser(*matched)
	s.mu.Unlock()
	s.markDirty()

	s.saveSession(user.ID)

	return user, nil
}

// SignOut clears the device session and removes the persisted pointer.
func (s *Store) SignOut() {
	s.mu.Lock()
	s.data.CurrentUser = nil
	s.data.IsAuthenticated = false
	s.mu.Unlock()
	s.markDirty()

	s.clearSession()
}
