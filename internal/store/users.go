package store

// UpdateUserName renames a user. The name is the only profile field the
// user may edit; ratings and role are owned by the marketplace flows.
func (s *Store) UpdateUserName(userID, name string) (User, error) {
	s.mu.Lock()
	defer s.unlockAndPersist()

	user := s.findUserLocked(userID)
	if user == nil {
		return User{}, ErrUserNotFound
	}
	user.Name = name
	return cloneUser(*user), nil
}

// PromoteToAdmin flips a user's role to admin. Used by the offline
// adminutil, not exposed over HTTP.
func (s *Store) PromoteToAdmin(userID string) (User, error) {
	s.mu.Lock()
	defer s.unlockAndPersist()

	user := s.findUserLocked(userID)
	if user == nil {
		return User{}, ErrUserNotFound
	}
	user.Role = RoleAdmin
	return cloneUser(*user), nil
}
