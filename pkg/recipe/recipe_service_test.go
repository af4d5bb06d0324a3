package recipe

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRecipeRepository struct {
	recipes    map[string]*entities.Recipe
	ratings    []*entities.Rating
	likes      []*entities.RecipeLike
	steps      []*entities.CookingStep
	categories map[string]*entities.Category
}

func newFakeRecipeRepository() *fakeRecipeRepository {
	return &fakeRecipeRepository{
		recipes:    make(map[string]*entities.Recipe),
		categories: make(map[string]*entities.Category),
	}
}

func (f *fakeRecipeRepository) CreateRecipe(_ context.Context, recipe *entities.Recipe) error {
	recipe.CreatedAt = time.Now()
	f.recipes[recipe.ID.String()] = recipe
	return nil
}

func (f *fakeRecipeRepository) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeRecipeRepository) UpdateRecipe(_ context.Context, recipe *entities.Recipe) error {
	f.recipes[recipe.ID.String()] = recipe
	return nil
}

func (f *fakeRecipeRepository) DeleteRecipe(_ context.Context, id string) error {
	delete(f.recipes, id)
	keptRatings := f.ratings[:0]
	for _, r := range f.ratings {
		if r.RecipeID.String() != id {
			keptRatings = append(keptRatings, r)
		}
	}
	f.ratings = keptRatings
	keptLikes := f.likes[:0]
	for _, l := range f.likes {
		if l.RecipeID.String() != id {
			keptLikes = append(keptLikes, l)
		}
	}
	f.likes = keptLikes
	keptSteps := f.steps[:0]
	for _, s := range f.steps {
		if s.RecipeID.String() != id {
			keptSteps = append(keptSteps, s)
		}
	}
	f.steps = keptSteps
	return nil
}

func (f *fakeRecipeRepository) GetRecipesByDay(_ context.Context, search string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	for _, r := range f.recipes {
		recipes = append(recipes, r)
	}
	sort.Slice(recipes, func(i, j int) bool {
		if !recipes[i].Day.Equal(recipes[j].Day) {
			return recipes[i].Day.Before(recipes[j].Day)
		}
		return recipes[i].Name < recipes[j].Name
	})
	return recipes, nil
}

func (f *fakeRecipeRepository) GetRecentRecipes(_ context.Context, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	for _, r := range f.recipes {
		recipes = append(recipes, r)
	}
	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].CreatedAt.After(recipes[j].CreatedAt)
	})
	if len(recipes) > limit {
		recipes = recipes[:limit]
	}
	return recipes, nil
}

func (f *fakeRecipeRepository) GetRecipesByOwner(_ context.Context, userID string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	for _, r := range f.recipes {
		if r.UserID != nil && r.UserID.String() == userID {
			recipes = append(recipes, r)
		}
	}
	return recipes, nil
}

func (f *fakeRecipeRepository) CountRecipes(_ context.Context) (int64, error) {
	return int64(len(f.recipes)), nil
}

func (f *fakeRecipeRepository) CountRecipesByOwner(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, r := range f.recipes {
		if r.UserID != nil && r.UserID.String() == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRecipeRepository) GetCategoriesByIDs(_ context.Context, ids []string) ([]*entities.Category, error) {
	var categories []*entities.Category
	for _, id := range ids {
		if c, ok := f.categories[id]; ok {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

func (f *fakeRecipeRepository) ReplaceCategories(_ context.Context, recipe *entities.Recipe, categories []*entities.Category) error {
	recipe.Categories = categories
	return nil
}

func (f *fakeRecipeRepository) CreateRating(_ context.Context, rating *entities.Rating) error {
	for _, existing := range f.ratings {
		if existing.RecipeID == rating.RecipeID && existing.UserID == rating.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	f.ratings = append(f.ratings, rating)
	return nil
}

func (f *fakeRecipeRepository) HasRating(_ context.Context, recipeID, userID string) (bool, error) {
	for _, r := range f.ratings {
		if r.RecipeID.String() == recipeID && r.UserID.String() == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRecipeRepository) GetAverageRating(_ context.Context, recipeID string) (float64, error) {
	var sum, count int
	for _, r := range f.ratings {
		if r.RecipeID.String() == recipeID {
			sum += r.Score
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

func (f *fakeRecipeRepository) CountRatings(_ context.Context, recipeID string) (int64, error) {
	var count int64
	for _, r := range f.ratings {
		if r.RecipeID.String() == recipeID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRecipeRepository) CreateLike(_ context.Context, like *entities.RecipeLike) error {
	for _, existing := range f.likes {
		if existing.RecipeID == like.RecipeID && existing.UserID == like.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	f.likes = append(f.likes, like)
	return nil
}

func (f *fakeRecipeRepository) DeleteLike(_ context.Context, recipeID, userID string) error {
	kept := f.likes[:0]
	for _, l := range f.likes {
		if !(l.RecipeID.String() == recipeID && l.UserID.String() == userID) {
			kept = append(kept, l)
		}
	}
	f.likes = kept
	return nil
}

func (f *fakeRecipeRepository) HasLike(_ context.Context, recipeID, userID string) (bool, error) {
	for _, l := range f.likes {
		if l.RecipeID.String() == recipeID && l.UserID.String() == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRecipeRepository) CountLikes(_ context.Context, recipeID string) (int64, error) {
	var count int64
	for _, l := range f.likes {
		if l.RecipeID.String() == recipeID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRecipeRepository) CreateStep(_ context.Context, step *entities.CookingStep) error {
	for _, existing := range f.steps {
		if existing.RecipeID == step.RecipeID && existing.StepNumber == step.StepNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	f.steps = append(f.steps, step)
	return nil
}

func (f *fakeRecipeRepository) GetSteps(_ context.Context, recipeID string) ([]*entities.CookingStep, error) {
	var steps []*entities.CookingStep
	for _, s := range f.steps {
		if s.RecipeID.String() == recipeID {
			steps = append(steps, s)
		}
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].StepNumber < steps[j].StepNumber })
	return steps, nil
}

func (f *fakeRecipeRepository) HasStep(_ context.Context, recipeID string, stepNumber int) (bool, error) {
	for _, s := range f.steps {
		if s.RecipeID.String() == recipeID && s.StepNumber == stepNumber {
			return true, nil
		}
	}
	return false, nil
}

type fakeUserStore struct {
	users map[string]*entities.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*entities.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *entities.User) error {
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetUserByUsername(_ context.Context, username string) (*entities.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) GetUsers(_ context.Context) ([]*entities.User, error) {
	var users []*entities.User
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserStore) CountUsers(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserStore) CountChefs(_ context.Context) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.HasGroup(domain.ChefGroupName) {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserStore) GetOrCreateGroup(_ context.Context, name string) (*entities.Group, error) {
	return &entities.Group{ID: uuid.New(), Name: name}, nil
}

func (f *fakeUserStore) AddUserToGroup(_ context.Context, user *entities.User, group *entities.Group) error {
	f.users[user.ID.String()].Groups = append(f.users[user.ID.String()].Groups, group)
	return nil
}

func (f *fakeUserStore) IsUserInGroup(_ context.Context, userID string, groupName string) (bool, error) {
	u, ok := f.users[userID]
	if !ok {
		return false, nil
	}
	return u.HasGroup(groupName), nil
}

func newChef(store *fakeUserStore, username string) *entities.User {
	chef := &entities.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Groups:   []*entities.Group{{ID: uuid.New(), Name: domain.ChefGroupName}},
	}
	store.users[chef.ID.String()] = chef
	return chef
}

func newAdmin(store *fakeUserStore, username string) *entities.User {
	admin := &entities.User{
		ID:          uuid.New(),
		Username:    username,
		Email:       username + "@example.com",
		IsSuperuser: true,
	}
	store.users[admin.ID.String()] = admin
	return admin
}

func newPlainUser(store *fakeUserStore, username string) *entities.User {
	u := &entities.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
	}
	store.users[u.ID.String()] = u
	return u
}

func TestCreateRecipe_StampsOwner(t *testing.T) {
	repo := newFakeRecipeRepository()
	users := newFakeUserStore()
	svc := NewRecipeService(repo, users, nil)
	bob := newChef(users, "bob")

	res, err := svc.CreateRecipe(context.Background(), domain.SaveRecipeRequest{
		Day:         "2024-06-01",
		Name:        "Ratatouille",
		Description: "Vegetables, slowly",
	}, bob.ID.String())
	if err != nil {
		t.Fatalf("CreateRecipe() error = %v", err)
	}

	if res.OwnerID != bob.ID.String() {
		t.Errorf("owner = %q, want creator %q", res.OwnerID, bob.ID.String())
	}
	if res.Day != "2024-06-01" {
		t.Errorf("day = %q, want 2024-06-01", res.Day)
	}
	if res.PrepTimeMinutes != 30 || res.Servings != 2 {
		t.Errorf("defaults not applied: prep=%d servings=%d", res.PrepTimeMinutes, res.Servings)
	}

	stored, err := repo.GetRecipeByID(context.Background(), res.ID)
	if err != nil {
		t.Fatalf("created recipe not stored: %v", err)
	}
	if stored.UserID == nil || *stored.UserID != bob.ID {
		t.Error("stored recipe owner not stamped from authenticated identity")
	}
}

func TestCreateRecipe_InvalidDay(t *testing.T) {
	repo := newFakeRecipeRepository()
	users := newFakeUserStore()
	svc := NewRecipeService(repo, users, nil)
	bob := newChef(users, "bob")

	_, err := svc.CreateRecipe(context.Background(), domain.SaveRecipeRequest{
		Day:         "01/06/2024",
		Name:        "Ratatouille",
		Description: "Vegetables",
	}, bob.ID.String())
	if !errors.Is(err, domain.ErrInvalidDay) {
		t.Errorf("CreateRecipe() error = %v, want ErrInvalidDay", err)
	}
	if len(repo.recipes) != 0 {
		t.Error("no recipe should be persisted on validation failure")
	}
}

func createTestRecipe(t *testing.T, svc RecipeService, ownerID string) domain.RecipeResponse {
	t.Helper()
	res, err := svc.CreateRecipe(context.Background(), domain.SaveRecipeRequest{
		Day:         "2024-06-01",
		Name:        "Ratatouille",
		Description: "Vegetables, slowly",
	}, ownerID)
	if err != nil {
		t.Fatalf("CreateRecipe() error = %v", err)
	}
	return res
}

func TestUpdateRecipe_OwnershipPolicy(t *testing.T) {
	repo := newFakeRecipeRepository()
	users := newFakeUserStore()
	svc := NewRecipeService(repo, users, nil)
	alice := newChef(users, "alice")
	bob := newChef(users, "bob")
	admin := newAdmin(users, "root")

	created := createTestRecipe(t, svc, alice.ID.String())

	// another chef may not touch it
	_, err := svc.UpdateRecipe(context.Background(), created.ID, domain.UpdateRecipeRequest{Name: "Stolen"}, bob.ID.String())
	if !errors.Is(err, domain.ErrUserNotAllowed) {
		t.Errorf("cross-chef update error = %v, want ErrUserNotAllowed", err)
	}

	// the owner may
	res, err := svc.UpdateRecipe(context.Background(), created.ID, domain.UpdateRecipeRequest{Name: "Ratatouille v2"}, alice.ID.String())
	if err != nil {
		t.Fatalf("owner update error = %v", err)
	}
	if res.Name != "Ratatouille v2" {
		t.Errorf("name = %q after owner update", res.Name)
	}

	// and so may an admin
	if _, err := svc.UpdateRecipe(context.Background(), created.ID, domain.UpdateRecipeRequest{Servings: 6}, admin.ID.String()); err != nil {
		t.Errorf("admin update error = %v", err)
	}
}

func TestDeleteRecipe_OwnershipPolicy(t *testing.T) {
	repo := newFakeRecipeRepository()
	users := newFakeUserStore()
	svc := NewRecipeService(repo, users, nil)
	alice := newChef(users, "alice")
	bob := newChef(users, "bob")
	admin := newAdmin(users, "root")

	created := createTestRecipe(t, svc, alice.ID.String())

	if err := svc.DeleteRecipe(context.Background(), created.ID, bob.ID.String()); !errors.Is(err, domain.ErrUserNotAllowed) {
		t.Errorf("cross-chef delete error = %v, want ErrUserNotAllowed", err)
	}
	if _, ok := repo.recipes[created.ID]; !ok {
		t.Fatal("recipe must survive a denied delete")
	}

	if err := svc.DeleteRecipe(context.Background(), created.ID, admin.ID.String()); err != nil {
		t.Fatalf("admin delete error = %v", err)
	}
	if _, ok := repo.recipes[created.ID]; ok {
		t.Error("recipe should be gone after admin delete")
	}
}

func TestDeleteRecipe_WithChildRows(t *testing.T) {
	repo := newFakeRecipeRepository()
	users := newFakeUserStore()
	svc := NewRecipeService(repo, users, nil)
	alice := newChef(users, "alice")
	fan := newPlainUser(users, "dave")

	created := createTestRecipe(t, svc, alice.ID.String())
	if err := svc.RateRecipe(context.Background(), created.ID, domain.RateRecipeRequest{Score: 4}, fan.ID.String()); err != nil {
		t.Fatal(err)
	}
	if err := svc.LikeRecipe(context.Background(), created.ID, fan.ID.String()); err != nil {
		t.Fatal(err)
	}
	if err := svc.AddCookingStep(context.Background(), created.ID, domain.CookingStepRequest{StepNumber: 1, Instruction: "Chop"}, alice.ID.String()); err != nil {
		t.Fatal(err)
	}

	// a rated, liked recipe with steps must still be deletable
	if err := svc.DeleteRecipe(context.Background(), created.ID, alice.ID.String()); err != nil {
		t.Fatalf("DeleteRecipe() error = %v", err)
	}
	if len(repo.ratings) != 0 || len(repo.likes) != 0 || len(repo.steps) != 0 {
		t.Errorf("child rows survived deletion: ratings=%d likes=%d steps=%d",
			len(repo.ratings), len(repo.likes), len(repo.steps))
	}
}

func TestDeleteRecipe_NotFound(t *testing.T) {
	users := newFakeUserStore()
	svc := NewRecipeService(newFakeRecipeRepository(), users, nil)
	alice := newChef(users, "alice")

	if err := svc.DeleteRecipe(context.Background(), uuid.New().String(), alice.ID.String()); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Errorf("DeleteRecipe() error = %v, want ErrRecipeNotFound", err)
	}
}

func TestRateRecipe(t *testing.T) {
	repo := newFakeRecipeRepository()
	users := newFakeUserStore()
	svc := NewRecipeService(repo, users, nil)
	alice := newChef(users, "alice")
	rater := newPlainUser(users, "dave")

	created := createTestRecipe(t, svc, alice.ID.String())

	if err := svc.RateRecipe(context.Background(), created.ID, domain.RateRecipeRequest{Score: 0}, rater.ID.String()); !errors.Is(err, domain.ErrInvalidScore) {
		t.Errorf("score 0 error = %v, want ErrInvalidScore", err)
	}
	if err := svc.RateRecipe(context.Background(), created.ID, domain.RateRecipeRequest{Score: 6}, rater.ID.String()); !errors.Is(err, domain.ErrInvalidScore) {
		t.Errorf("score 6 error = %v, want ErrInvalidScore", err)
	}

	if err := svc.RateRecipe(context.Background(), created.ID, domain.RateRecipeRequest{Score: 3}, rater.ID.String()); err != nil {
		t.Fatalf("RateRecipe() error = %v", err)
	}

	// one rating per (recipe, user)
	if err := svc.RateRecipe(context.Background(), created.ID, domain.RateRecipeRequest{Score: 5}, rater.ID.String()); !errors.Is(err, domain.ErrAlreadyRated) {
		t.Errorf("second rating error = %v, want ErrAlreadyRated", err)
	}
	if len(repo.ratings) != 1 {
		t.Errorf("stored ratings = %d, want 1", len(repo.ratings))
	}
}

// staleRatingRepo simulates the window between the existence pre-check and
// the insert: HasRating never sees the concurrent writer, so the unique
// index is the only thing stopping the duplicate.
type staleRatingRepo struct {
	*fakeRecipeRepository
}

func (s *staleRatingRepo) HasRating(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func TestRateRecipe_ConcurrentDuplicate(t *testing.T) {
	repo := &staleRatingRepo{newFakeRecipeRepository()}
	users := newFakeUserStore()
	svc := NewRecipeService(repo, users, nil)
	alice := newChef(users, "alice")
	rater := newPlainUser(users, "dave")

	created := createTestRecipe(t, svc, alice.ID.String())

	if err := svc.RateRecipe(context.Background(), created.ID, domain.RateRecipeRequest{Score: 3}, rater.ID.String()); err != nil {
		t.Fatalf("first RateRecipe() error = %v", err)
	}
	// the pre-check misses, the store's unique index rejects, and the
	// conflict surfaces as the same domain error
	if err := svc.RateRecipe(context.Background(), created.ID, domain.RateRecipeRequest{Score: 5}, rater.ID.String()); !errors.Is(err, domain.ErrAlreadyRated) {
		t.Errorf("racing duplicate error = %v, want ErrAlreadyRated", err)
	}
	if len(repo.ratings) != 1 {
		t.Errorf("stored ratings = %d, want 1", len(repo.ratings))
	}
}

func TestAverageRating(t *testing.T) {
	repo := newFakeRecipeRepository()
	users := newFakeUserStore()
	svc := NewRecipeService(repo, users, nil)
	alice := newChef(users, "alice")

	created := createTestRecipe(t, svc, alice.ID.String())

	detail, err := svc.GetRecipeDetail(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetRecipeDetail() error = %v", err)
	}
	if detail.AverageRating != 0 {
		t.Errorf("average with no ratings = %v, want 0", detail.AverageRating)
	}

	first := newPlainUser(users, "dave")
	second := newPlainUser(users, "erin")
	if err := svc.RateRecipe(context.Background(), created.ID, domain.RateRecipeRequest{Score: 3}, first.ID.String()); err != nil {
		t.Fatal(err)
	}
	if err := svc.RateRecipe(context.Background(), created.ID, domain.RateRecipeRequest{Score: 5}, second.ID.String()); err != nil {
		t.Fatal(err)
	}

	detail, err = svc.GetRecipeDetail(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetRecipeDetail() error = %v", err)
	}
	if detail.AverageRating != 4.0 {
		t.Errorf("average of [3,5] = %v, want 4.0", detail.AverageRating)
	}
	if detail.RatingCount != 2 {
		t.Errorf("rating count = %d, want 2", detail.RatingCount)
	}
}

func TestLikeRecipe_PresenceSemantics(t *testing.T) {
	repo := newFakeRecipeRepository()
	users := newFakeUserStore()
	svc := NewRecipeService(repo, users, nil)
	alice := newChef(users, "alice")
	fan := newPlainUser(users, "dave")

	created := createTestRecipe(t, svc, alice.ID.String())

	if err := svc.LikeRecipe(context.Background(), created.ID, fan.ID.String()); err != nil {
		t.Fatalf("LikeRecipe() error = %v", err)
	}
	// liking twice is a no-op
	if err := svc.LikeRecipe(context.Background(), created.ID, fan.ID.String()); err != nil {
		t.Fatalf("second LikeRecipe() error = %v", err)
	}
	if len(repo.likes) != 1 {
		t.Errorf("stored likes = %d, want 1", len(repo.likes))
	}

	if err := svc.UnlikeRecipe(context.Background(), created.ID, fan.ID.String()); err != nil {
		t.Fatalf("UnlikeRecipe() error = %v", err)
	}
	if len(repo.likes) != 0 {
		t.Errorf("stored likes after unlike = %d, want 0", len(repo.likes))
	}
}

func TestAddCookingStep(t *testing.T) {
	repo := newFakeRecipeRepository()
	users := newFakeUserStore()
	svc := NewRecipeService(repo, users, nil)
	alice := newChef(users, "alice")
	bob := newChef(users, "bob")

	created := createTestRecipe(t, svc, alice.ID.String())

	if err := svc.AddCookingStep(context.Background(), created.ID, domain.CookingStepRequest{StepNumber: 1, Instruction: "Chop"}, alice.ID.String()); err != nil {
		t.Fatalf("AddCookingStep() error = %v", err)
	}
	if err := svc.AddCookingStep(context.Background(), created.ID, domain.CookingStepRequest{StepNumber: 1, Instruction: "Chop again"}, alice.ID.String()); !errors.Is(err, domain.ErrDuplicateStepNumber) {
		t.Errorf("duplicate step error = %v, want ErrDuplicateStepNumber", err)
	}
	if err := svc.AddCookingStep(context.Background(), created.ID, domain.CookingStepRequest{StepNumber: 2, Instruction: "Simmer"}, bob.ID.String()); !errors.Is(err, domain.ErrUserNotAllowed) {
		t.Errorf("non-owner step error = %v, want ErrUserNotAllowed", err)
	}

	if err := svc.AddCookingStep(context.Background(), created.ID, domain.CookingStepRequest{StepNumber: 2, Instruction: "Simmer"}, alice.ID.String()); err != nil {
		t.Fatal(err)
	}
	detail, err := svc.GetRecipeDetail(context.Background(), created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Steps) != 2 || detail.Steps[0].StepNumber != 1 || detail.Steps[1].StepNumber != 2 {
		t.Errorf("steps not ordered by number: %+v", detail.Steps)
	}
}
