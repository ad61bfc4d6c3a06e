// ABOUTME: User accounts with bcrypt password hashes
// ABOUTME: Unique emails, role changes, authentication and the admin seed

package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ecg-energy/audit-analyzer/models"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser stores a new account. The email must be unused.
func (s *Store) CreateUser(req models.CreateUserRequest) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	user := models.User{
		ID:           NewID(),
		Email:        normalizeEmail(req.Email),
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTakenLocked(user.Email, "") {
		return models.User{}, fmt.Errorf("email %s: %w", user.Email, ErrConflict)
	}
	s.data.Users = append(s.data.Users, user)
	if err := s.saveLocked(); err != nil {
		s.data.Users = s.data.Users[:len(s.data.Users)-1]
		return models.User{}, err
	}
	return user.Public(), nil
}

// ListUsers returns all accounts without credentials, newest first
func (s *Store) ListUsers() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, len(s.data.Users))
	for i, u := range s.data.Users {
		out[i] = u.Public()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// GetUser returns one account without credentials
func (s *Store) GetUser(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.userIndexLocked(id); i >= 0 {
		return s.data.Users[i].Public(), nil
	}
	return models.User{}, ErrNotFound
}

// UpdateUserRole changes a user's role. Demoting the last admin is a conflict.
func (s *Store) UpdateUserRole(id string, role models.Role) (models.User, error) {
	if !role.Valid() {
		return models.User{}, fmt.Errorf("unknown role %q", role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.userIndexLocked(id)
	if i < 0 {
		return models.User{}, ErrNotFound
	}
	prev := s.data.Users[i]
	if prev.Role == models.RoleAdmin && role != models.RoleAdmin && s.adminCountLocked() == 1 {
		return models.User{}, fmt.Errorf("demoting the last admin: %w", ErrConflict)
	}

	s.data.Users[i].Role = role
	if err := s.saveLocked(); err != nil {
		s.data.Users[i] = prev
		return models.User{}, err
	}
	return s.data.Users[i].Public(), nil
}

// UpdateUserProfile changes display name and email
func (s *Store) UpdateUserProfile(id, displayName, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.userIndexLocked(id)
	if i < 0 {
		return models.User{}, ErrNotFound
	}
	prev := s.data.Users[i]

	if email = normalizeEmail(email); email != "" {
		if s.emailTakenLocked(email, id) {
			return models.User{}, fmt.Errorf("email %s: %w", email, ErrConflict)
		}
		s.data.Users[i].Email = email
	}
	s.data.Users[i].DisplayName = strings.TrimSpace(displayName)

	if err := s.saveLocked(); err != nil {
		s.data.Users[i] = prev
		return models.User{}, err
	}
	return s.data.Users[i].Public(), nil
}

// SetPassword replaces a user's password
func (s *Store) SetPassword(id, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIndexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	prev := s.data.Users[i].PasswordHash
	s.data.Users[i].PasswordHash = string(hash)
	if err := s.saveLocked(); err != nil {
		s.data.Users[i].PasswordHash = prev
		return err
	}
	return nil
}

// DeleteUser removes an account. Audits keep their owner ID. Deleting the last admin is a conflict.
func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.userIndexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	if s.data.Users[i].Role == models.RoleAdmin && s.adminCountLocked() == 1 {
		return fmt.Errorf("deleting the last admin: %w", ErrConflict)
	}
	prev := s.data.Users
	s.data.Users = removeAt(prev, i)
	if err := s.saveLocked(); err != nil {
		s.data.Users = prev
		return err
	}
	return nil
}

// AuthenticateUser checks credentials and returns the account without its hash
func (s *Store) AuthenticateUser(email, password string) (models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	s.mu.RLock()
	var user models.User
	found := false
	for _, u := range s.data.Users {
		if u.Email == email {
			user, found = u, true
			break
		}
	}
	s.mu.RUnlock()

	if !found || user.PasswordHash == "" {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("comparing password: %w", err)
	}
	return user.Public(), nil
}

// EnsureAdmin seeds an admin account when the store has no users.
// Returns true when an account was created.
func (s *Store) EnsureAdmin(email, password string) (bool, error) {
	s.mu.RLock()
	empty := len(s.data.Users) == 0
	s.mu.RUnlock()
	if !empty {
		return false, nil
	}

	_, err := s.CreateUser(models.CreateUserRequest{
		Email:       email,
		Password:    password,
		DisplayName: "Administrator",
		Role:        models.RoleAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) userIndexLocked(id string) int {
	for i, u := range s.data.Users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) emailTakenLocked(email, excludeID string) bool {
	for _, u := range s.data.Users {
		if u.ID != excludeID && u.Email == email {
			return true
		}
	}
	return false
}

func (s *Store) adminCountLocked() int {
	n := 0
	for _, u := range s.data.Users {
		if u.Role == models.RoleAdmin {
			n++
		}
	}
	return n
}
