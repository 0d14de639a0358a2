// Package seed populates the database with demo data for development
// and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"commune/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumMembers  int
	NumPosts    int
	ShouldClean bool
}

// SeedPassword is the plaintext password shared by all seeded members.
const SeedPassword = "password123"

// Seed fills the database with members, friendships, posts, likes and
// comments. Existing data is wiped first when ShouldClean is set.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Seeding %d members and %d posts...", opts.NumMembers, opts.NumPosts)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Could not clear all existing data, continuing anyway...")
		}
	}

	members, err := createMembers(db, opts.NumMembers)
	if err != nil {
		return fmt.Errorf("failed to create members: %w", err)
	}
	log.Printf("✓ %d members created", len(members))

	friendships, err := createFriendships(db, members)
	if err != nil {
		return fmt.Errorf("failed to create friendships: %w", err)
	}
	log.Printf("✓ %d friendships created", friendships)

	posts, err := createPosts(db, members, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	likes, comments, err := createEngagement(db, members, posts)
	if err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Printf("✓ %d likes and %d comments created", likes, comments)

	log.Println("🎉 Seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, posts, friendships, members RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createMembers(db *gorm.DB, count int) ([]*models.Member, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	members := make([]*models.Member, 0, count)
	for i := 0; i < count; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		members = append(members, &models.Member{
			Email:     fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Password:  string(hash),
			FirstName: first,
			LastName:  last,
			Bio:       gofakeit.Sentence(10),
			City:      gofakeit.City(),
			CreatedAt: randomPastTime(180),
		})
	}
	if err := db.Create(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// createFriendships gives each member a handful of outgoing friend links.
// Links are one-directional, so a few are reciprocated on purpose and
// most are not.
func createFriendships(db *gorm.DB, members []*models.Member) (int, error) {
	if len(members) < 2 {
		return 0, nil
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	seen := make(map[[2]uint]bool)
	var edges []*models.Friendship

	for _, m := range members {
		outgoing := 1 + r.Intn(5)
		for i := 0; i < outgoing; i++ {
			target := members[r.Intn(len(members))]
			if target.ID == m.ID {
				continue
			}
			key := [2]uint{m.ID, target.ID}
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, &models.Friendship{
				MemberID:  m.ID,
				FriendID:  target.ID,
				CreatedAt: randomPastTime(90),
			})
		}
	}
	if len(edges) == 0 {
		return 0, nil
	}
	if err := db.Create(&edges).Error; err != nil {
		return 0, err
	}
	return len(edges), nil
}

func createPosts(db *gorm.DB, members []*models.Member, count int) ([]*models.Post, error) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := members[r.Intn(len(members))]
		posts = append(posts, &models.Post{
			AuthorID:  author.ID,
			Content:   gofakeit.Paragraph(1, 3, 8, "\n"),
			CreatedAt: randomPastTime(60),
		})
	}
	if err := db.Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func createEngagement(db *gorm.DB, members []*models.Member, posts []*models.Post) (int, int, error) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	seen := make(map[[2]uint]bool)
	var likes []*models.Like
	var comments []*models.Comment

	for _, p := range posts {
		for i := 0; i < r.Intn(8); i++ {
			liker := members[r.Intn(len(members))]
			key := [2]uint{liker.ID, p.ID}
			if seen[key] {
				continue
			}
			seen[key] = true
			likes = append(likes, &models.Like{
				MemberID:  liker.ID,
				PostID:    p.ID,
				CreatedAt: p.CreatedAt.Add(time.Duration(1+r.Intn(72)) * time.Hour),
			})
		}

		for i := 0; i < r.Intn(4); i++ {
			author := members[r.Intn(len(members))]
			comments = append(comments, &models.Comment{
				AuthorID:  author.ID,
				PostID:    p.ID,
				Content:   gofakeit.Sentence(8 + r.Intn(12)),
				CreatedAt: p.CreatedAt.Add(time.Duration(1+r.Intn(96)) * time.Hour),
			})
		}
	}

	if len(likes) > 0 {
		if err := db.Create(&likes).Error; err != nil {
			return 0, 0, err
		}
	}
	if len(comments) > 0 {
		if err := db.Create(&comments).Error; err != nil {
			return 0, 0, err
		}
	}
	return len(likes), len(comments), nil
}

func randomPastTime(maxDays int) time.Time {
	//nolint:gosec // weak randomness is fine for demo data
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	minsBack := r.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}
