package controllers_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cityfix-be/models"
	"cityfix-be/repositories"
)

// fakeUserStore is an in-memory UserStore keyed by email.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (f *fakeUserStore) add(user models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	u := user
	f.users[user.Email] = &u
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	u := *user
	return &u, nil
}

func (f *fakeUserStore) FindAll(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := []models.User{}
	for _, u := range f.users {
		all = append(all, *u)
	}
	return all, nil
}

func (f *fakeUserStore) FindByRole(_ context.Context, role models.UserRole) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := []models.User{}
	for _, u := range f.users {
		if u.Role == role {
			matched = append(matched, *u)
		}
	}
	return matched, nil
}

func (f *fakeUserStore) Insert(_ context.Context, user models.User) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	u := user
	f.users[user.Email] = &u
	return user.ID, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, email, name, photo string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return 0, nil
	}
	user.Name = name
	user.Photo = photo
	return 1, nil
}

func (f *fakeUserStore) UpdateAdminFields(_ context.Context, id primitive.ObjectID, role *models.UserRole, isBlocked *bool) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			if role != nil {
				u.Role = *role
			}
			if isBlocked != nil {
				u.IsBlocked = *isBlocked
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeUserStore) SetVerified(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[email]; ok {
		user.IsVerified = true
	}
	return nil
}

func (f *fakeUserStore) EstimatedCount(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

// fakeIssueStore is an in-memory IssueStore that mirrors the repository's
// conditional-upvote and sort semantics.
type fakeIssueStore struct {
	mu     sync.Mutex
	issues map[primitive.ObjectID]*models.Issue
}

func newFakeIssueStore() *fakeIssueStore {
	return &fakeIssueStore{issues: map[primitive.ObjectID]*models.Issue{}}
}

func (f *fakeIssueStore) get(id primitive.ObjectID) *models.Issue {
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.issues[id]
	if !ok {
		return nil
	}
	copied := *issue
	copied.UpvotedBy = append([]string{}, issue.UpvotedBy...)
	copied.Timeline = append([]models.TimelineEvent{}, issue.Timeline...)
	return &copied
}

func (f *fakeIssueStore) Insert(_ context.Context, issue *models.Issue) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if issue.ID.IsZero() {
		issue.ID = primitive.NewObjectID()
	}
	copied := *issue
	f.issues[issue.ID] = &copied
	return issue.ID, nil
}

func (f *fakeIssueStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Issue, error) {
	return f.get(id), nil
}

func (f *fakeIssueStore) List(_ context.Context, filter repositories.IssueFilter, limit int64) ([]models.Issue, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := []models.Issue{}
	for _, issue := range f.issues {
		if filter.Search != "" && !strings.Contains(strings.ToLower(issue.Title), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Status != "" && string(issue.Status) != filter.Status {
			continue
		}
		if filter.Category != "" && issue.Category != filter.Category {
			continue
		}
		if filter.Priority != "" && string(issue.Priority) != filter.Priority {
			continue
		}
		matched = append(matched, *issue)
	}

	// Priority label ascending, then date descending, like the Mongo sort.
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Priority != matched[j].Priority {
			return matched[i].Priority < matched[j].Priority
		}
		return matched[i].Date.After(matched[j].Date)
	})

	total := int64(len(matched))
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (f *fakeIssueStore) CountByReporter(_ context.Context, email string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, issue := range f.issues {
		if issue.ReporterEmail == email {
			count++
		}
	}
	return count, nil
}

func (f *fakeIssueStore) FindByReporter(_ context.Context, email string) ([]models.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := []models.Issue{}
	for _, issue := range f.issues {
		if issue.ReporterEmail == email {
			matched = append(matched, *issue)
		}
	}
	return matched, nil
}

func (f *fakeIssueStore) FindByAssignedStaff(_ context.Context, email string) ([]models.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := []models.Issue{}
	for _, issue := range f.issues {
		if issue.AssignedStaff != nil && issue.AssignedStaff.Email == email {
			matched = append(matched, *issue)
		}
	}
	return matched, nil
}

func (f *fakeIssueStore) Upvote(_ context.Context, id primitive.ObjectID, email string) (repositories.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.issues[id]
	if !ok {
		return repositories.UpdateResult{}, nil
	}
	for _, voter := range issue.UpvotedBy {
		if voter == email {
			return repositories.UpdateResult{}, nil
		}
	}
	issue.Upvotes++
	issue.UpvotedBy = append(issue.UpvotedBy, email)
	return repositories.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeIssueStore) UpdateContent(_ context.Context, id primitive.ObjectID, title, category, location, description string) (repositories.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.issues[id]
	if !ok {
		return repositories.UpdateResult{}, nil
	}
	issue.Title = title
	issue.Category = category
	issue.Location = location
	issue.Description = description
	return repositories.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeIssueStore) Boost(_ context.Context, id primitive.ObjectID, event models.TimelineEvent) (repositories.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.issues[id]
	if !ok {
		return repositories.UpdateResult{}, nil
	}
	issue.Priority = models.PriorityHigh
	issue.Timeline = append(issue.Timeline, event)
	return repositories.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeIssueStore) Assign(_ context.Context, id primitive.ObjectID, staff models.AssignedStaff, event models.TimelineEvent) (repositories.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.issues[id]
	if !ok {
		return repositories.UpdateResult{}, nil
	}
	issue.AssignedStaff = &staff
	issue.Timeline = append(issue.Timeline, event)
	return repositories.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeIssueStore) SetStatus(_ context.Context, id primitive.ObjectID, status models.IssueStatus, event models.TimelineEvent) (repositories.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.issues[id]
	if !ok {
		return repositories.UpdateResult{}, nil
	}
	issue.Status = status
	issue.Timeline = append(issue.Timeline, event)
	return repositories.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (f *fakeIssueStore) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.issues[id]; !ok {
		return 0, nil
	}
	delete(f.issues, id)
	return 1, nil
}

func (f *fakeIssueStore) EstimatedCount(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.issues)), nil
}

// fakePaymentStore is an in-memory append-only PaymentStore.
type fakePaymentStore struct {
	mu       sync.Mutex
	payments []models.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{}
}

func (f *fakePaymentStore) Insert(_ context.Context, payment *models.Payment) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	f.payments = append(f.payments, *payment)
	return payment.ID, nil
}

func (f *fakePaymentStore) FindAll(_ context.Context) ([]models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := append([]models.Payment{}, f.payments...)
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	return all, nil
}

func (f *fakePaymentStore) FindByUser(_ context.Context, email string) ([]models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := []models.Payment{}
	for _, p := range f.payments {
		if p.UserEmail == email {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })
	return matched, nil
}

func (f *fakePaymentStore) SumAmounts(_ context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total float64
	for _, p := range f.payments {
		total += p.Amount
	}
	return total, nil
}

// fakeGateway records intent requests and returns a canned client secret.
type fakeGateway struct {
	mu         sync.Mutex
	amounts    []int64
	currencies []string
	err        error
}

func (f *fakeGateway) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.amounts = append(f.amounts, amount)
	f.currencies = append(f.currencies, currency)
	return "pi_test_secret", nil
}
