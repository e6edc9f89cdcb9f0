package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/tiers/internal/model"
)

// ChartPath is the chart location relative to a project root.
var ChartPath = filepath.Join("accounts", "chart-of-accounts.csv")

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byID     map[int]model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	byID := make(map[int]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return &Service{accounts: accounts, byID: byID}
}

// Load reads the chart of accounts at path. Relative paths are resolved
// against repoRoot.
func Load(repoRoot, path string) (*Service, error) {
	if path == "" {
		path = ChartPath
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(repoRoot, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by ID.
func (s *Service) Get(id int) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Exists reports whether an account ID exists.
func (s *Service) Exists(id int) bool {
	_, ok := s.byID[id]
	return ok
}

// ByClass returns all accounts of the given chart class.
func (s *Service) ByClass(class int) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Class == class {
			result = append(result, a)
		}
	}
	return result
}

// Candidates returns a fresh option list for the account field, in chart
// order. Callers own the slice and may repair its labels.
func (s *Service) Candidates() []model.AccountCandidate {
	out := make([]model.AccountCandidate, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a.Candidate())
	}
	return out
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv under repoRoot.
func (s *Service) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, filepath.Dir(ChartPath))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(filepath.Join(repoRoot, ChartPath))
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
