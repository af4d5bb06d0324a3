package user

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
	"Meal-Planner-Backend/pkg/jwt"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	users  map[string]*entities.User
	groups map[string]*entities.Group
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		users:  make(map[string]*entities.User),
		groups: make(map[string]*entities.Group),
	}
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepository) GetUserByUsername(_ context.Context, username string) (*entities.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetUsers(_ context.Context) ([]*entities.User, error) {
	var users []*entities.User
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserRepository) CountUsers(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepository) CountChefs(_ context.Context) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.HasGroup(domain.ChefGroupName) {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepository) GetOrCreateGroup(_ context.Context, name string) (*entities.Group, error) {
	if g, ok := f.groups[name]; ok {
		return g, nil
	}
	g := &entities.Group{ID: uuid.New(), Name: name}
	f.groups[name] = g
	return g, nil
}

func (f *fakeUserRepository) AddUserToGroup(_ context.Context, user *entities.User, group *entities.Group) error {
	stored := f.users[user.ID.String()]
	if stored.HasGroup(group.Name) {
		return nil
	}
	stored.Groups = append(stored.Groups, group)
	return nil
}

func (f *fakeUserRepository) IsUserInGroup(_ context.Context, userID string, groupName string) (bool, error) {
	u, ok := f.users[userID]
	if !ok {
		return false, nil
	}
	return u.HasGroup(groupName), nil
}

func newTestService(repo UserRepository) *userService {
	return &userService{
		userRepository: repo,
		jwtService:     jwt.NewJWTService(),
		sendMail:       func(string, string, string) error { return nil },
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestService(repo)

	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	stored, err := repo.GetUserByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("registered user not stored: %v", err)
	}
	if stored.Password == "supersecret" {
		t.Error("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("supersecret")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}

	if res.Role != string(domain.RoleUser) {
		t.Errorf("new registration role = %q, want %q", res.Role, domain.RoleUser)
	}
	if res.Dashboard != domain.PathDashboardUser {
		t.Errorf("new registration dashboard = %q, want %q", res.Dashboard, domain.PathDashboardUser)
	}
	if res.Token == "" {
		t.Error("registration should issue a token")
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestService(repo)

	req := domain.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "supersecret"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	req.Email = "other@example.com"
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Errorf("Register() error = %v, want ErrUsernameTaken", err)
	}
}

func TestRegister_MailFailureDoesNotFail(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestService(repo)
	svc.sendMail = func(string, string, string) error { return errors.New("smtp down") }

	if _, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "supersecret",
	}); err != nil {
		t.Errorf("Register() should tolerate mail failure, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestService(repo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.DefaultCost)
	chefGroup := &entities.Group{ID: uuid.New(), Name: domain.ChefGroupName}
	chef := &entities.User{
		ID:       uuid.New(),
		Username: "bob",
		Email:    "bob@example.com",
		Password: string(hashed),
		Groups:   []*entities.Group{chefGroup},
	}
	repo.users[chef.ID.String()] = chef

	res, err := svc.Login(context.Background(), domain.LoginRequest{Username: "bob", Password: "supersecret"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.Role != string(domain.RoleChef) {
		t.Errorf("role = %q, want %q", res.Role, domain.RoleChef)
	}
	if res.Dashboard != domain.PathDashboardChef {
		t.Errorf("dashboard = %q, want %q", res.Dashboard, domain.PathDashboardChef)
	}

	if _, err := svc.Login(context.Background(), domain.LoginRequest{Username: "bob", Password: "wrong"}); !errors.Is(err, domain.ErrCredentialsInvalid) {
		t.Errorf("wrong password error = %v, want ErrCredentialsInvalid", err)
	}
	if _, err := svc.Login(context.Background(), domain.LoginRequest{Username: "nobody", Password: "supersecret"}); !errors.Is(err, domain.ErrCredentialsInvalid) {
		t.Errorf("unknown user error = %v, want ErrCredentialsInvalid", err)
	}
}

func TestPromoteToChef_Idempotent(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestService(repo)

	target := &entities.User{ID: uuid.New(), Username: "carol", Email: "carol@example.com"}
	repo.users[target.ID.String()] = target

	res, err := svc.PromoteToChef(context.Background(), target.ID.String())
	if err != nil {
		t.Fatalf("PromoteToChef() error = %v", err)
	}
	if res.Role != string(domain.RoleChef) {
		t.Errorf("role after promotion = %q, want %q", res.Role, domain.RoleChef)
	}

	// promoting an existing chef is a no-op, not an error
	res, err = svc.PromoteToChef(context.Background(), target.ID.String())
	if err != nil {
		t.Fatalf("second PromoteToChef() error = %v", err)
	}
	if res.Role != string(domain.RoleChef) {
		t.Errorf("role after second promotion = %q, want %q", res.Role, domain.RoleChef)
	}
	if len(target.Groups) != 1 {
		t.Errorf("group memberships = %d, want 1", len(target.Groups))
	}
}

func TestPromoteToChef_MissingUser(t *testing.T) {
	svc := newTestService(newFakeUserRepository())

	if _, err := svc.PromoteToChef(context.Background(), uuid.New().String()); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("PromoteToChef() error = %v, want ErrUserNotFound", err)
	}
}
