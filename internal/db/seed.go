package db

import (
	"fmt"
	"log"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PasswordSetter fills in a user's salt and password hash.
type PasswordSetter func(u *User, password string) error

// SeedPassword is the password of every seeded user.
const SeedPassword = "password"

// SeedTestData resets the database and populates it with a demo social graph.
//
// Behavior:
//  1. Clears every table and resets auto-increment sequences.
//  2. Creates 20 users (user1..user20) with password SeedPassword.
//  3. Each user follows ~5 random others; user1 follows nobody (cold start).
//  4. Each user writes 3 posts, half of them public, and random votes set scores.
//  5. Adds groups, code modules with proposals, and tagged hashtags for search.
//
// Compatible with MySQL, Postgres and SQLite.
func SeedTestData(db *gorm.DB, setPassword PasswordSetter) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// --- Fresh start ---
	if err := reset(db); err != nil {
		return err
	}
	log.Println("Cleared existing data")

	// --- Users ---
	const userCount = 20
	users := make([]User, 0, userCount)
	for i := 1; i <= userCount; i++ {
		u := User{
			Name:      fmt.Sprintf("user%d", i),
			Email:     fmt.Sprintf("user%d@example.com", i),
			AuthToken: uuid.NewString(),
		}
		if err := setPassword(&u, SeedPassword); err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		users = append(users, u)
	}
	if err := db.Create(&users).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	log.Printf("Seeded %d users.", len(users))

	// --- Follows ---
	follows := 0
	for _, follower := range users[1:] {
		for j := 0; j < 5; j++ {
			followed := users[r.Intn(len(users))]
			if followed.ID == follower.ID {
				continue
			}
			res := db.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&Connection{FollowerID: follower.ID, FollowedID: followed.ID})
			if res.Error != nil {
				return fmt.Errorf("failed to seed follow: %w", res.Error)
			}
			follows += int(res.RowsAffected)
		}
	}
	log.Printf("Seeded %d follows.", follows)

	// --- Posts and votes ---
	posts := make([]Post, 0, len(users)*3)
	for _, u := range users {
		for j := 1; j <= 3; j++ {
			posts = append(posts, Post{
				UserID:         u.ID,
				Text:           fmt.Sprintf("Post %d by %s", j, u.Name),
				PubliclyShared: j%2 == 1,
			})
		}
	}
	if err := db.Create(&posts).Error; err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}

	for i := range posts {
		voters := r.Perm(len(users))[:r.Intn(8)]
		score := 0
		for _, v := range voters {
			voter := users[v]
			if voter.ID == posts[i].UserID {
				continue
			}
			up := r.Intn(100) < 75
			if err := db.Create(&Vote{UserID: voter.ID, ItemKind: ItemPost, ItemID: posts[i].ID, Up: up}).Error; err != nil {
				return fmt.Errorf("failed to seed vote: %w", err)
			}
			if up {
				score++
			} else {
				score--
			}
		}
		if err := db.Model(&posts[i]).Update("score", score).Error; err != nil {
			return fmt.Errorf("failed to score post: %w", err)
		}
	}
	log.Printf("Seeded %d posts.", len(posts))

	// --- Directory ---
	groups := []Group{{Name: "Gophers", Rank: 10}, {Name: "Distributed", Rank: 7}, {Name: "Databases", Rank: 4}}
	if err := db.Create(&groups).Error; err != nil {
		return fmt.Errorf("failed to seed groups: %w", err)
	}

	modules := []CodeModule{
		{UserID: users[1].ID, Name: "Parser", Rank: 5},
		{UserID: users[2].ID, Name: "Scheduler", Rank: 3},
	}
	if err := db.Create(&modules).Error; err != nil {
		return fmt.Errorf("failed to seed modules: %w", err)
	}
	proposal := Proposal{UserID: users[3].ID, CodeModuleID: modules[0].ID, Text: "Stream tokens instead of buffering"}
	if err := db.Create(&proposal).Error; err != nil {
		return fmt.Errorf("failed to seed proposal: %w", err)
	}

	hashtags := []Hashtag{
		{UserID: users[1].ID, Name: "Go tips", Tags: []HashtagTag{{Tag: "go"}, {Tag: "tips"}}},
		{UserID: users[4].ID, Name: "Release notes", Tags: []HashtagTag{{Tag: "go"}, {Tag: "release"}}},
	}
	if err := db.Create(&hashtags).Error; err != nil {
		return fmt.Errorf("failed to seed hashtags: %w", err)
	}
	log.Println("Seeded directory.")

	return nil
}

// reset empties every table, children first, and restarts id sequences.
func reset(db *gorm.DB) error {
	models := slices.Clone(Models())
	slices.Reverse(models)

	for _, m := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return fmt.Errorf("failed to resolve table: %w", err)
		}
		table := stmt.Schema.Table

		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}

		// Reset auto-increment sequences; tables without one ignore the error.
		switch db.Dialector.Name() {
		case "mysql":
			db.Exec(fmt.Sprintf("ALTER TABLE %s AUTO_INCREMENT = 1", table))
		case "postgres":
			db.Exec(fmt.Sprintf("ALTER SEQUENCE IF EXISTS %s_id_seq RESTART WITH 1", table))
		case "sqlite":
			db.Exec("DELETE FROM sqlite_sequence WHERE name = ?", table)
		}
	}
	return nil
}
