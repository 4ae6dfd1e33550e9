package library

// Manager is a thin façade over the store, the user directory and the
// session table, keeping shell code simple. Catalog operations carry no
// business logic of their own: they resolve an owner and delegate.
type Manager struct {
	store    *Store
	users    *UserDirectory
	sessions *SessionManager
}

// NewManager opens (or creates) the data directory at dataDir.
func NewManager(dataDir string) (*Manager, error) {
	store, err := NewStore(dataDir)
	if err != nil {
		return nil, err
	}
	users, err := NewUserDirectory(dataDir, store)
	if err != nil {
		return nil, err
	}
	return &Manager{
		store:    store,
		users:    users,
		sessions: NewSessionManager(),
	}, nil
}

// ------------------ Catalog helpers ------------------

func (m *Manager) Books(owner string) []Book { return m.store.Load(owner) }

func (m *Manager) GetBook(owner string, id int) (Book, error) { return m.store.Get(owner, id) }

func (m *Manager) AddBook(owner, title, author, lentTo string) (Book, error) {
	return m.store.Add(owner, title, author, lentTo)
}

func (m *Manager) UpdateBook(owner string, id int, title, author, lentTo string) (Book, error) {
	return m.store.Update(owner, id, title, author, lentTo)
}

// RemoveBook deletes the book and yields its title for confirmation.
func (m *Manager) RemoveBook(owner string, id int) (string, error) {
	return m.store.Remove(owner, id)
}

// SaveBooks overwrites an owner's whole catalog, e.g. when importing.
func (m *Manager) SaveBooks(owner string, books []Book) error {
	return m.store.Save(owner, books)
}

// ------------------ Auth helpers ------------------

// Register creates the account and immediately logs it in, returning
// the new session's token.
func (m *Manager) Register(username, password, confirm string) (string, error) {
	session, err := m.users.Register(username, password, confirm)
	if err != nil {
		return "", err
	}
	return m.sessions.Issue(session), nil
}

// Login authenticates and returns a fresh session token.
func (m *Manager) Login(username, password string) (string, error) {
	session, err := m.users.Authenticate(username, password)
	if err != nil {
		return "", err
	}
	return m.sessions.Issue(session), nil
}

// Logout revokes the token.
func (m *Manager) Logout(token string) { m.sessions.Revoke(token) }

// CurrentUser resolves a session token; ok is false for anonymous
// clients.
func (m *Manager) CurrentUser(token string) (Session, bool) {
	return m.sessions.Resolve(token)
}

// Users exposes the directory for administrative tooling.
func (m *Manager) Users() *UserDirectory { return m.users }
