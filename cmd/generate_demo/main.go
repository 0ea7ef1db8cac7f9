// Command generate_demo creates a demo database with sample catalog,
// membership and circulation data.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"openshelf/internal/circulation"
	"openshelf/internal/database"
	"openshelf/internal/database/books"
	"openshelf/internal/database/members"
	"openshelf/internal/entities"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	bookIDs := seedBooks(db)
	memberIDs := seedMembers(db)
	seedCirculation(db, bookIDs, memberIDs)

	log.Println("Demo database generated successfully!")
}

func seedBooks(db *database.Database) map[string]uint {
	repo := books.NewRepository(db.DB)

	catalog := []entities.Book{
		{
			Title:         "Meditations",
			Author:        "Marcus Aurelius",
			ISBN:          "978-0812968255",
			Publisher:     "Modern Library",
			YearPublished: 2002,
			Genre:         "philosophy",
			TotalCopies:   3,
		},
		{
			Title:         "Pride and Prejudice",
			Author:        "Jane Austen",
			ISBN:          "978-0141439518",
			Publisher:     "Penguin Classics",
			YearPublished: 2002,
			Genre:         "fiction",
			TotalCopies:   4,
		},
		{
			Title:         "On the Origin of Species",
			Author:        "Charles Darwin",
			ISBN:          "978-0451529060",
			Publisher:     "Signet Classics",
			YearPublished: 2003,
			Genre:         "science",
			TotalCopies:   2,
		},
		{
			Title:         "Frankenstein",
			Author:        "Mary Shelley",
			ISBN:          "978-0486282114",
			Publisher:     "Dover Publications",
			YearPublished: 1994,
			Genre:         "fiction",
			TotalCopies:   2,
		},
		{
			Title:         "The Art of War",
			Author:        "Sun Tzu",
			ISBN:          "978-1590302255",
			Publisher:     "Shambhala",
			YearPublished: 2005,
			Genre:         "philosophy",
			TotalCopies:   1,
		},
		{
			Title:         "Crime and Punishment",
			Author:        "Fyodor Dostoevsky",
			ISBN:          "978-0143058142",
			Publisher:     "Penguin Classics",
			YearPublished: 2002,
			Genre:         "fiction",
			TotalCopies:   3,
		},
	}

	ids := make(map[string]uint)
	for i := range catalog {
		book := &catalog[i]
		if err := repo.CreateBook(book); err != nil {
			log.Printf("Failed to save book %s: %v", book.Title, err)
			continue
		}
		ids[book.Title] = book.ID
		log.Printf("Saved: %s by %s (%d copies)", book.Title, book.Author, book.TotalCopies)
	}
	return ids
}

func seedMembers(db *database.Database) map[string]uint {
	repo := members.NewRepository(db.DB)

	roster := []entities.Member{
		{
			Name:    "Ada Lovelace",
			Email:   "ada@example.com",
			Phone:   "555-0101",
			Address: "12 Analytical Lane",
		},
		{
			Name:    "Grace Hopper",
			Email:   "grace@example.com",
			Phone:   "555-0102",
			Address: "7 Compiler Court",
		},
		{
			Name:    "Alan Turing",
			Email:   "alan@example.com",
			Phone:   "555-0103",
			Address: "42 Bletchley Park",
		},
		{
			Name:   "Charles Babbage",
			Email:  "charles@example.com",
			Phone:  "555-0104",
			Status: entities.MemberStatusInactive,
		},
	}

	ids := make(map[string]uint)
	for i := range roster {
		member := &roster[i]
		if err := repo.CreateMember(member); err != nil {
			log.Printf("Failed to save member %s: %v", member.Name, err)
			continue
		}
		ids[member.Name] = member.ID
		log.Printf("Saved member: %s (%s)", member.Name, member.Status)
	}
	return ids
}

func seedCirculation(db *database.Database, bookIDs, memberIDs map[string]uint) {
	// An on-schedule loan issued today
	engine := circulation.NewService(db.DB)
	if _, err := engine.Issue(bookIDs["Meditations"], memberIDs["Ada Lovelace"], time.Time{}); err != nil {
		log.Printf("Failed to issue Meditations: %v", err)
	} else {
		log.Println("Issued: Meditations to Ada Lovelace")
	}

	// A loan already past its due date, so the overdue sweep and fine
	// paths have something to chew on
	tenDaysAgo := time.Now().AddDate(0, 0, -10)
	backdated := circulation.NewService(db.DB, circulation.WithClock(func() time.Time { return tenDaysAgo }))
	if _, err := backdated.Issue(bookIDs["Pride and Prejudice"], memberIDs["Grace Hopper"], circulation.DateOnly(tenDaysAgo).AddDate(0, 0, 7)); err != nil {
		log.Printf("Failed to issue Pride and Prejudice: %v", err)
	} else {
		log.Println("Issued: Pride and Prejudice to Grace Hopper (3 days overdue)")
	}

	// A completed loan with a fine on record
	monthAgo := time.Now().AddDate(0, 0, -30)
	historic := circulation.NewService(db.DB, circulation.WithClock(func() time.Time { return monthAgo }))
	txn, err := historic.Issue(bookIDs["Frankenstein"], memberIDs["Alan Turing"], circulation.DateOnly(monthAgo).AddDate(0, 0, 14))
	if err != nil {
		log.Printf("Failed to issue Frankenstein: %v", err)
		return
	}
	twelveDaysAgo := time.Now().AddDate(0, 0, -12)
	closer := circulation.NewService(db.DB, circulation.WithClock(func() time.Time { return twelveDaysAgo }))
	closed, err := closer.Return(txn.ID)
	if err != nil {
		log.Printf("Failed to return Frankenstein: %v", err)
		return
	}
	log.Printf("Returned: Frankenstein by Alan Turing (fine %.2f)", closed.Fine)
}
