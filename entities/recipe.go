package entities

import (
	"time"

	"github.com/google/uuid"
)

type Recipe struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID          *uuid.UUID `gorm:"type:uuid" json:"user_id,omitempty"`
	Day             time.Time  `gorm:"type:date;not null" json:"day"`
	Name            string     `gorm:"not null" json:"name"`
	Description     string     `gorm:"type:text" json:"description"`
	PrepTimeMinutes int        `gorm:"default:30" json:"prep_time_minutes"`
	Servings        int        `gorm:"default:2" json:"servings"`
	DifficultyLevel string     `json:"difficulty_level,omitempty"`
	ImageURL        string     `json:"image_url,omitempty"`
	NutritionFacts  string     `gorm:"type:text" json:"nutrition_facts,omitempty"`

	// Owner removal keeps the recipe and nulls the reference.
	User       *User         `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	Categories []*Category   `gorm:"many2many:recipe_categories" json:"categories,omitempty"`
	Steps      []CookingStep `gorm:"foreignKey:RecipeID" json:"steps,omitempty"`
	Timestamp
}

type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`

	Timestamp
}

type CookingStep struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_steps_recipe_number" json:"recipe_id"`
	StepNumber  int       `gorm:"uniqueIndex:idx_steps_recipe_number;not null" json:"step_number"`
	Instruction string    `gorm:"type:text;not null" json:"instruction"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

type Rating struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_ratings_recipe_user" json:"recipe_id"`
	UserID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_ratings_recipe_user" json:"user_id"`
	Score    int       `gorm:"not null;check:score >= 1 AND score <= 5" json:"score"`
	Review   string    `gorm:"type:text" json:"review,omitempty"`

	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Recipe    *Recipe   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
}

// RecipeLike is presence-only: a row exists iff the user likes the recipe.
type RecipeLike struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_likes_recipe_user" json:"recipe_id"`
	UserID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_likes_recipe_user" json:"user_id"`

	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	Recipe    *Recipe   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
}
